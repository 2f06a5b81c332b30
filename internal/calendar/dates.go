package calendar

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lichvannien/internal/config"
)

// DaysInMonth returns the number of days of a Gregorian month (month is 1-indexed).
// Months outside [1,12] are normalized by time.Date.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOffset returns the weekday of the first day of the month, 0 = Sunday.
func FirstWeekdayOffset(year, month int) int {
	return int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// IsSameCalendarDay reports whether a and b fall on the same year, month and day.
// Time of day is ignored; each value is read in its own location.
func IsSameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MonthKey identifies a displayed Gregorian month.
type MonthKey struct {
	Year  int
	Month int // 1..12
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// Add returns the month offset steps away, rolling the year over in both directions.
func (k MonthKey) Add(offset int) MonthKey {
	total := k.Year*config.MonthsPerYear + (k.Month - 1) + offset
	year := total / config.MonthsPerYear
	rem := total % config.MonthsPerYear
	if rem < 0 {
		rem += config.MonthsPerYear
		year--
	}
	return MonthKey{Year: year, Month: rem + 1}
}

// Days returns the length of the month.
func (k MonthKey) Days() int {
	return DaysInMonth(k.Year, k.Month)
}

// FirstWeekday returns the grid padding for the month, 0 = Sunday.
func (k MonthKey) FirstWeekday() int {
	return FirstWeekdayOffset(k.Year, k.Month)
}

// Contains reports whether day is a valid day of the month.
func (k MonthKey) Contains(day int) bool {
	return day >= 1 && day <= k.Days()
}

// Date returns midnight of the given day of the month in loc.
func (k MonthKey) Date(day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, time.Month(k.Month), day, 0, 0, 0, 0, loc)
}

// String formats the key as YYYY-MM.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}
