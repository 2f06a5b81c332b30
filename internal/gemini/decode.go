package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

// ErrMalformedResponse marks a completion that does not match the expected shape.
var ErrMalformedResponse = errors.New(config.ErrDecode)

// Wire types use pointers (and nil slices) so that absent fields can be told
// apart from zero values.

type wireLunarDate struct {
	Day         *int  `json:"day"`
	Month       *int  `json:"month"`
	Year        *int  `json:"year"`
	IsLeapMonth *bool `json:"isLeapMonth"`
}

type wireDailyDetails struct {
	SolarDate         *string        `json:"solarDate"`
	LunarDate         *wireLunarDate `json:"lunarDate"`
	DayCanChi         *string        `json:"dayCanChi"`
	MonthCanChi       *string        `json:"monthCanChi"`
	YearCanChi        *string        `json:"yearCanChi"`
	SolarTerm         *string        `json:"solarTerm"`
	DayOfficer        *string        `json:"dayOfficer"`
	AuspiciousHours   []string       `json:"auspiciousHours"`
	InauspiciousHours []string       `json:"inauspiciousHours"`
	GoodStars         []string       `json:"goodStars"`
	BadStars          []string       `json:"badStars"`
	ShouldDo          []string       `json:"shouldDo"`
	ShouldNotDo       []string       `json:"shouldNotDo"`
}

type wireDayInfo struct {
	SolarDay   *int  `json:"solarDay"`
	LunarDay   *int  `json:"lunarDay"`
	LunarMonth *int  `json:"lunarMonth"`
	IsHoliday  *bool `json:"isHoliday"`
	IsGoodDay  *bool `json:"isGoodDay"`
}

type wireConvertedDate struct {
	Year   *int    `json:"year"`
	Month  *int    `json:"month"`
	Day    *int    `json:"day"`
	CanChi *string `json:"canChi"`
}

// fields collects the names of absent required fields while copying values out.
type fields struct {
	missing []string
}

func (f *fields) str(name string, v *string) string {
	if v == nil {
		f.missing = append(f.missing, name)
		return ""
	}
	return *v
}

func (f *fields) num(name string, v *int) int {
	if v == nil {
		f.missing = append(f.missing, name)
		return 0
	}
	return *v
}

func (f *fields) flag(name string, v *bool) bool {
	if v == nil {
		f.missing = append(f.missing, name)
		return false
	}
	return *v
}

func (f *fields) list(name string, v []string) []string {
	if v == nil {
		f.missing = append(f.missing, name)
	}
	return v
}

func (f *fields) err() error {
	if len(f.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrMalformedResponse, config.ErrFieldMissing, strings.Join(f.missing, ", "))
}

func unmarshal(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

func invalid(name string, value int) error {
	return fmt.Errorf("%w: %s: %s=%d", ErrMalformedResponse, config.ErrFieldInvalid, name, value)
}

// DecodeDailyDetails parses the daily almanac. Every field is required.
func DecodeDailyDetails(text string) (calendar.DailyDetails, error) {
	var w wireDailyDetails
	if err := unmarshal(text, &w); err != nil {
		return calendar.DailyDetails{}, err
	}

	var f fields
	d := calendar.DailyDetails{
		SolarDate:         f.str(config.FieldSolarDate, w.SolarDate),
		DayCanChi:         f.str(config.FieldDayCanChi, w.DayCanChi),
		MonthCanChi:       f.str(config.FieldMonthCanChi, w.MonthCanChi),
		YearCanChi:        f.str(config.FieldYearCanChi, w.YearCanChi),
		SolarTerm:         f.str(config.FieldSolarTerm, w.SolarTerm),
		DayOfficer:        f.str(config.FieldDayOfficer, w.DayOfficer),
		AuspiciousHours:   f.list(config.FieldAuspiciousHours, w.AuspiciousHours),
		InauspiciousHours: f.list(config.FieldInauspiciousHours, w.InauspiciousHours),
		GoodStars:         f.list(config.FieldGoodStars, w.GoodStars),
		BadStars:          f.list(config.FieldBadStars, w.BadStars),
		ShouldDo:          f.list(config.FieldShouldDo, w.ShouldDo),
		ShouldNotDo:       f.list(config.FieldShouldNotDo, w.ShouldNotDo),
	}

	if w.LunarDate == nil {
		f.missing = append(f.missing, config.FieldLunarDate)
	} else {
		prefix := config.FieldLunarDate + "."
		d.LunarDate = calendar.LunarDate{
			Day:         f.num(prefix+config.FieldDay, w.LunarDate.Day),
			Month:       f.num(prefix+config.FieldMonth, w.LunarDate.Month),
			Year:        f.num(prefix+config.FieldYear, w.LunarDate.Year),
			IsLeapMonth: f.flag(prefix+config.FieldIsLeapMonth, w.LunarDate.IsLeapMonth),
		}
	}
	if err := f.err(); err != nil {
		return calendar.DailyDetails{}, err
	}

	if d.LunarDate.Day < config.MinLunarDay || d.LunarDate.Day > config.MaxLunarDay {
		return calendar.DailyDetails{}, invalid(config.FieldLunarDate+"."+config.FieldDay, d.LunarDate.Day)
	}
	if d.LunarDate.Month < config.MinMonth || d.LunarDate.Month > config.MaxLunarMonth {
		return calendar.DailyDetails{}, invalid(config.FieldLunarDate+"."+config.FieldMonth, d.LunarDate.Month)
	}
	return d, nil
}

// DecodeLunarMonth parses the month batch of year/month.
//
// A missing required field fails the whole batch. Entries whose values are out
// of range, or whose solar day was already seen, are skipped with a warning.
func DecodeLunarMonth(text string, year, month int) ([]calendar.DayLunarInfo, error) {
	var wire []wireDayInfo
	if err := unmarshal(text, &wire); err != nil {
		return nil, err
	}

	key := calendar.MonthKey{Year: year, Month: month}
	log := slog.With(
		config.LogKeyComponent, config.CompGemini,
		config.LogKeyMonth, key.String(),
	)

	batch := make([]calendar.DayLunarInfo, 0, len(wire))
	seen := make(map[int]bool, len(wire))
	for i, w := range wire {
		var f fields
		info := calendar.DayLunarInfo{
			SolarDay:   f.num(config.FieldSolarDay, w.SolarDay),
			LunarDay:   f.num(config.FieldLunarDay, w.LunarDay),
			LunarMonth: f.num(config.FieldLunarMonth, w.LunarMonth),
			IsHoliday:  f.flag(config.FieldIsHoliday, w.IsHoliday),
			IsGoodDay:  f.flag(config.FieldIsGoodDay, w.IsGoodDay),
		}
		if err := f.err(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		var reason string
		switch {
		case !key.Contains(info.SolarDay):
			reason = config.FieldSolarDay
		case seen[info.SolarDay]:
			reason = config.FieldSolarDay + " (duplicate)"
		case info.LunarDay < config.MinLunarDay || info.LunarDay > config.MaxLunarDay:
			reason = config.FieldLunarDay
		case info.LunarMonth < config.MinMonth || info.LunarMonth > config.MaxLunarMonth:
			reason = config.FieldLunarMonth
		}
		if reason != "" {
			log.Warn(config.MsgSkippedDay,
				config.LogKeyField, reason,
				config.LogKeyValue, info.SolarDay)
			continue
		}

		seen[info.SolarDay] = true
		batch = append(batch, info)
	}
	return batch, nil
}

// DecodeConvertedDate parses a conversion answer. CanChi is optional.
func DecodeConvertedDate(text string) (calendar.ConvertedDate, error) {
	var w wireConvertedDate
	if err := unmarshal(text, &w); err != nil {
		return calendar.ConvertedDate{}, err
	}

	var f fields
	res := calendar.ConvertedDate{
		Year:  f.num(config.FieldYear, w.Year),
		Month: f.num(config.FieldMonth, w.Month),
		Day:   f.num(config.FieldDay, w.Day),
	}
	if err := f.err(); err != nil {
		return calendar.ConvertedDate{}, err
	}
	if w.CanChi != nil {
		res.CanChi = strings.TrimSpace(*w.CanChi)
	}

	if res.Month < config.MinMonth || res.Month > config.MonthsPerYear {
		return calendar.ConvertedDate{}, invalid(config.FieldMonth, res.Month)
	}
	if res.Day < 1 || res.Day > config.MaxSolarDay {
		return calendar.ConvertedDate{}, invalid(config.FieldDay, res.Day)
	}
	return res, nil
}
