package gemini

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lichvannien/internal/config"
)

// dailyDetailsPrompt asks for the almanac of one day. The rules on day
// officers and stars steer the should-do / should-not-do lists.
const dailyDetailsPrompt = `Cung cấp thông tin chi tiết Lịch Vạn Niên cho ngày %s tại Việt Nam.

Hãy đóng vai một chuyên gia Lịch Vạn Niên và tuân thủ nghiêm ngặt các quy tắc sau để xác định danh sách "việc nên làm" và "việc không nên làm":

1.  **Dựa vào Trực của ngày:**
    - Trực Khai: Tốt cho mọi việc, đặc biệt là cưới hỏi, khai trương, giao dịch.
    - Trực Bế: Xấu cho hầu hết mọi việc, chỉ nên làm các việc như lấp huyệt, đắp đê, xây vá tường.
    - Trực Kiến: Tốt cho việc khởi công, nhậm chức. Kỵ động thổ, đào đất.
    - Trực Phá: Chỉ tốt cho việc phá dỡ công trình cũ. Kỵ mọi việc khác.
    - Trực Thành: Tốt cho mọi việc, đặc biệt là khai trương, nhậm chức, cưới hỏi.

2.  **Dựa vào các Sao Tốt và Xấu:**
    - Nếu có sao tốt quan trọng như Thiên Hỷ, Thiên Phúc, Sinh Khí, Thiên Quý: Rất tốt cho cưới hỏi, làm nhà, cầu phúc. Liệt kê các việc này trong "việc nên làm".
    - Nếu có sao xấu đặc biệt nguy hiểm như Sát Chủ, Thọ Tử, Đại Hao: Tuyệt đối kỵ các việc lớn như khởi công, xây dựng, cưới hỏi, xuất hành. Liệt kê rõ các việc này trong "việc không nên làm".

3.  **Quy tắc kết hợp và ưu tiên:**
    - Ưu tiên cao nhất cho các sao đặc biệt xấu. Nếu ngày có sao Sát Chủ hoặc Thọ Tử, thì dù có nhiều sao tốt khác, vẫn phải kết luận là ngày xấu và khuyên tránh làm các việc quan trọng.
    - Cân nhắc sự cân bằng giữa sao tốt và sao xấu để đưa ra lời khuyên trung lập nếu cần.

Dựa vào những quy tắc trên, hãy tạo ra kết quả JSON chính xác.`

const lunarMonthPrompt = `Cung cấp dữ liệu lịch âm cho toàn bộ tháng %[1]d/%[2]d tại Việt Nam.

Trả về một mảng JSON. Mỗi đối tượng trong mảng đại diện cho một ngày trong tháng dương lịch đó và phải chứa các thuộc tính sau:
- "solarDay": số ngày dương lịch (1 đến %[3]d).
- "lunarDay": số ngày âm lịch tương ứng.
- "lunarMonth": số tháng âm lịch tương ứng.
- "isHoliday": boolean, là 'true' nếu đó là một ngày lễ quan trọng ở Việt Nam (ví dụ: Tết, 30/4, 1/5, 2/9).
- "isGoodDay": boolean, là 'true' nếu ngày đó được coi là ngày tốt chung (có nhiều sao tốt, trực tốt) cho các công việc quan trọng.

Ví dụ, cho ngày 1 tháng %[1]d năm %[2]d.`

const (
	solarToLunarPrompt = "Chuyển đổi ngày dương lịch %d/%d/%d sang ngày âm lịch Việt Nam."
	lunarToSolarPrompt = "Chuyển đổi ngày âm lịch %d/%d/%d sang ngày dương lịch Việt Nam."
)

// DailyDetailsPrompt formats the date as YYYY-MM-DD.
func DailyDetailsPrompt(date time.Time) string {
	return fmt.Sprintf(dailyDetailsPrompt, date.Format(config.DateFormatISO))
}

// LunarMonthPrompt states the month as M/YYYY and the number of solar days.
func LunarMonthPrompt(year, month, days int) string {
	return fmt.Sprintf(lunarMonthPrompt, month, year, days)
}

// SolarToLunarPrompt states the date as D/M/YYYY.
func SolarToLunarPrompt(year, month, day int) string {
	return fmt.Sprintf(solarToLunarPrompt, day, month, year)
}

// LunarToSolarPrompt states the date as D/M/YYYY.
func LunarToSolarPrompt(year, month, day int) string {
	return fmt.Sprintf(lunarToSolarPrompt, day, month, year)
}
