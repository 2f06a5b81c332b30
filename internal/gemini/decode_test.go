package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/gemini"
)

const detailsJSON = `{
  "solarDate": "2024-02-10",
  "lunarDate": {"day": 1, "month": 1, "year": 2024, "isLeapMonth": false},
  "dayCanChi": "Ngày Giáp Thìn",
  "monthCanChi": "Tháng Bính Dần",
  "yearCanChi": "Năm Giáp Thìn",
  "solarTerm": "Lập Xuân",
  "dayOfficer": "Trực Khai",
  "auspiciousHours": ["Dần (3:00-4:59)", "Thìn (7:00-8:59)"],
  "inauspiciousHours": ["Tý (23:00-0:59)"],
  "goodStars": ["Thiên Hỷ"],
  "badStars": [],
  "shouldDo": ["Cưới hỏi", "Khai trương"],
  "shouldNotDo": []
}`

func TestDecodeDailyDetails(t *testing.T) {
	d, err := gemini.DecodeDailyDetails(detailsJSON)
	require.NoError(t, err)

	assert.Equal(t, "2024-02-10", d.SolarDate)
	assert.Equal(t, calendar.LunarDate{Day: 1, Month: 1, Year: 2024}, d.LunarDate)
	assert.Equal(t, "Ngày Giáp Thìn", d.DayCanChi)
	assert.Equal(t, "Trực Khai", d.DayOfficer)
	assert.Len(t, d.AuspiciousHours, 2)
	assert.NotNil(t, d.BadStars, "An empty list is present, not missing")
	assert.Empty(t, d.BadStars)
}

func TestDecodeDailyDetails_Strict(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"NotJSON", `Xin lỗi, tôi không thể`, ""},
		{"WrongType", `{"solarDate": 20240210}`, ""},
		{"MissingLunarDate", `{"solarDate":"2024-02-10","dayCanChi":"a","monthCanChi":"b","yearCanChi":"c","solarTerm":"d","dayOfficer":"e","auspiciousHours":[],"inauspiciousHours":[],"goodStars":[],"badStars":[],"shouldDo":[],"shouldNotDo":[]}`, "lunarDate"},
		{"MissingLeapFlag", `{"solarDate":"2024-02-10","lunarDate":{"day":1,"month":1,"year":2024},"dayCanChi":"a","monthCanChi":"b","yearCanChi":"c","solarTerm":"d","dayOfficer":"e","auspiciousHours":[],"inauspiciousHours":[],"goodStars":[],"badStars":[],"shouldDo":[],"shouldNotDo":[]}`, "lunarDate.isLeapMonth"},
		{"NullList", `{"solarDate":"2024-02-10","lunarDate":{"day":1,"month":1,"year":2024,"isLeapMonth":false},"dayCanChi":"a","monthCanChi":"b","yearCanChi":"c","solarTerm":"d","dayOfficer":"e","auspiciousHours":null,"inauspiciousHours":[],"goodStars":[],"badStars":[],"shouldDo":[],"shouldNotDo":[]}`, "auspiciousHours"},
		{"LunarDayOutOfRange", `{"solarDate":"2024-02-10","lunarDate":{"day":31,"month":1,"year":2024,"isLeapMonth":false},"dayCanChi":"a","monthCanChi":"b","yearCanChi":"c","solarTerm":"d","dayOfficer":"e","auspiciousHours":[],"inauspiciousHours":[],"goodStars":[],"badStars":[],"shouldDo":[],"shouldNotDo":[]}`, "lunarDate.day=31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gemini.DecodeDailyDetails(tt.payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, gemini.ErrMalformedResponse)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDecodeLunarMonth(t *testing.T) {
	payload := `[
	  {"solarDay": 1, "lunarDay": 21, "lunarMonth": 1, "isHoliday": false, "isGoodDay": true},
	  {"solarDay": 2, "lunarDay": 22, "lunarMonth": 1, "isHoliday": false, "isGoodDay": false},
	  {"solarDay": 2, "lunarDay": 23, "lunarMonth": 1, "isHoliday": false, "isGoodDay": false},
	  {"solarDay": 30, "lunarDay": 20, "lunarMonth": 2, "isHoliday": false, "isGoodDay": false},
	  {"solarDay": 3, "lunarDay": 0, "lunarMonth": 1, "isHoliday": false, "isGoodDay": false},
	  {"solarDay": 4, "lunarDay": 24, "lunarMonth": 13, "isHoliday": false, "isGoodDay": false},
	  {"solarDay": 10, "lunarDay": 1, "lunarMonth": 1, "isHoliday": true, "isGoodDay": false}
	]`

	// February 2024 has 29 days: day 30 is out of range.
	batch, err := gemini.DecodeLunarMonth(payload, 2024, 2)
	require.NoError(t, err)

	assert.Equal(t, []calendar.DayLunarInfo{
		{SolarDay: 1, LunarDay: 21, LunarMonth: 1, IsGoodDay: true},
		{SolarDay: 2, LunarDay: 22, LunarMonth: 1},
		{SolarDay: 10, LunarDay: 1, LunarMonth: 1, IsHoliday: true},
	}, batch)
}

func TestDecodeLunarMonth_MissingFieldFailsBatch(t *testing.T) {
	payload := `[
	  {"solarDay": 1, "lunarDay": 21, "lunarMonth": 1, "isHoliday": false, "isGoodDay": true},
	  {"solarDay": 2, "lunarDay": 22, "lunarMonth": 1, "isHoliday": false}
	]`

	batch, err := gemini.DecodeLunarMonth(payload, 2024, 3)
	assert.Nil(t, batch)
	require.ErrorIs(t, err, gemini.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "isGoodDay")
	assert.Contains(t, err.Error(), "entry 1")
}

func TestDecodeLunarMonth_Empty(t *testing.T) {
	batch, err := gemini.DecodeLunarMonth(`[]`, 2024, 3)
	require.NoError(t, err)
	assert.Empty(t, batch)

	_, err = gemini.DecodeLunarMonth(`{"solarDay":1}`, 2024, 3)
	assert.ErrorIs(t, err, gemini.ErrMalformedResponse, "An object is not a batch")
}

func TestDecodeConvertedDate(t *testing.T) {
	res, err := gemini.DecodeConvertedDate(`{"year":2024,"month":1,"day":1,"canChi":" Ngày Giáp Thìn "}`)
	require.NoError(t, err)
	assert.Equal(t, calendar.ConvertedDate{Year: 2024, Month: 1, Day: 1, CanChi: "Ngày Giáp Thìn"}, res)

	res, err = gemini.DecodeConvertedDate(`{"year":2024,"month":2,"day":10}`)
	require.NoError(t, err)
	assert.Empty(t, res.CanChi, "canChi is optional")

	_, err = gemini.DecodeConvertedDate(`{"year":2024,"day":10}`)
	assert.ErrorIs(t, err, gemini.ErrMalformedResponse)
	assert.ErrorContains(t, err, "month")

	_, err = gemini.DecodeConvertedDate(`{"year":2024,"month":13,"day":10}`)
	assert.ErrorContains(t, err, "month=13")

	_, err = gemini.DecodeConvertedDate(`{"year":2024,"month":2,"day":0}`)
	assert.ErrorContains(t, err, "day=0")
}
