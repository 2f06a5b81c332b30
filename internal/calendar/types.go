package calendar

import "github.com/tartampluch/go-lichvannien/internal/config"

// DayLunarInfo annotates one solar day of a displayed month.
// Calendrical correctness is the data source's responsibility.
type DayLunarInfo struct {
	SolarDay   int
	LunarDay   int
	LunarMonth int
	IsHoliday  bool // Major Vietnamese holiday.
	IsGoodDay  bool // Generally auspicious day.
}

// LunarDate is a date of the Vietnamese lunar calendar.
type LunarDate struct {
	Day         int
	Month       int
	Year        int
	IsLeapMonth bool
}

// DailyDetails is the almanac record of one solar day.
// It is never mutated after decoding; a new fetch replaces it.
type DailyDetails struct {
	SolarDate   string // YYYY-MM-DD
	LunarDate   LunarDate
	DayCanChi   string
	MonthCanChi string
	YearCanChi  string
	SolarTerm   string // Tiết khí
	DayOfficer  string // Trực

	AuspiciousHours   []string // Giờ Hoàng Đạo
	InauspiciousHours []string // Giờ Hắc Đạo
	GoodStars         []string
	BadStars          []string
	ShouldDo          []string
	ShouldNotDo       []string
}

// ConvertedDate is the answer of a solar/lunar conversion.
type ConvertedDate struct {
	Year   int
	Month  int
	Day    int
	CanChi string // Optional.
}

// Direction selects the conversion performed by the Converter.
type Direction int

const (
	SolarToLunar Direction = iota
	LunarToSolar
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == SolarToLunar {
		return LunarToSolar
	}
	return SolarToLunar
}

func (d Direction) String() string {
	if d == LunarToSolar {
		return config.OpLunarToSolar
	}
	return config.OpSolarToLunar
}
