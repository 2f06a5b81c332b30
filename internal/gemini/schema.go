package gemini

import (
	"github.com/tartampluch/go-lichvannien/internal/config"
	"google.golang.org/genai"
)

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func integer(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger, Description: desc}
}

func boolean(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeBoolean, Description: desc}
}

func list(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: desc}
}

// DailyDetailsSchema constrains the daily almanac answer.
var DailyDetailsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		config.FieldSolarDate: str("Ngày dương lịch theo định dạng YYYY-MM-DD."),
		config.FieldLunarDate: {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				config.FieldDay:         integer("Ngày âm lịch."),
				config.FieldMonth:       integer("Tháng âm lịch."),
				config.FieldYear:        integer("Năm âm lịch."),
				config.FieldIsLeapMonth: boolean("Có phải tháng nhuận không."),
			},
			Required: []string{config.FieldDay, config.FieldMonth, config.FieldYear, config.FieldIsLeapMonth},
		},
		config.FieldDayCanChi:         str("Can Chi của ngày (ví dụ: 'Ngày Canh Tý')."),
		config.FieldMonthCanChi:       str("Can Chi của tháng (ví dụ: 'Tháng Mậu Dần')."),
		config.FieldYearCanChi:        str("Can Chi của năm (ví dụ: 'Năm Giáp Thìn')."),
		config.FieldSolarTerm:         str("Tiết khí hiện tại."),
		config.FieldDayOfficer:        str("Trực của ngày."),
		config.FieldAuspiciousHours:   list("Danh sách giờ Hoàng Đạo, ví dụ: 'Tý (23:00-00:59)'."),
		config.FieldInauspiciousHours: list("Danh sách giờ Hắc Đạo."),
		config.FieldGoodStars:         list("Danh sách sao tốt."),
		config.FieldBadStars:          list("Danh sách sao xấu."),
		config.FieldShouldDo:          list("Danh sách các việc nên làm."),
		config.FieldShouldNotDo:       list("Danh sách các việc không nên làm."),
	},
	Required: []string{
		config.FieldSolarDate, config.FieldLunarDate, config.FieldDayCanChi, config.FieldMonthCanChi,
		config.FieldYearCanChi, config.FieldSolarTerm, config.FieldDayOfficer, config.FieldAuspiciousHours,
		config.FieldInauspiciousHours, config.FieldGoodStars, config.FieldBadStars, config.FieldShouldDo,
		config.FieldShouldNotDo,
	},
}

// LunarMonthSchema constrains the month batch answer: one object per solar day.
var LunarMonthSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			config.FieldSolarDay:   integer("Ngày dương lịch (chỉ số ngày, ví dụ: 1, 2, ... 31)."),
			config.FieldLunarDay:   integer("Ngày âm lịch tương ứng."),
			config.FieldLunarMonth: integer("Tháng âm lịch tương ứng."),
			config.FieldIsHoliday:  boolean("Là ngày lễ lớn của Việt Nam (ví dụ: Tết Nguyên Đán, Quốc Khánh)."),
			config.FieldIsGoodDay:  boolean("Là ngày tốt nói chung cho các sự kiện quan trọng."),
		},
		Required: []string{config.FieldSolarDay, config.FieldLunarDay, config.FieldLunarMonth, config.FieldIsHoliday, config.FieldIsGoodDay},
	},
}

// ConversionSchema constrains both conversion directions.
var ConversionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		config.FieldYear:   {Type: genai.TypeInteger},
		config.FieldMonth:  {Type: genai.TypeInteger},
		config.FieldDay:    {Type: genai.TypeInteger},
		config.FieldCanChi: str("Can Chi của ngày, tháng, năm đã chuyển đổi (nếu có)."),
	},
	Required: []string{config.FieldYear, config.FieldMonth, config.FieldDay},
}
