package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		want        int
	}{
		{"January", 2023, 1, 31},
		{"February_Leap", 2024, 2, 29},
		{"February_Common", 2023, 2, 28},
		{"February_Century", 1900, 2, 28},
		{"February_400", 2000, 2, 29},
		{"April", 2024, 4, 30},
		{"December", 2024, 12, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.DaysInMonth(tt.year, tt.month))
		})
	}
}

// TestDaysInMonth_MatchesTimePackage walks every month of a leap cycle.
func TestDaysInMonth_MatchesTimePackage(t *testing.T) {
	for year := 1996; year <= 2004; year++ {
		for month := 1; month <= 12; month++ {
			first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			want := first.AddDate(0, 1, -1).Day()
			assert.Equal(t, want, calendar.DaysInMonth(year, month), "%d-%02d", year, month)
		}
	}
}

func TestFirstWeekdayOffset(t *testing.T) {
	// 2024-03-01 was a Friday, 2024-09-01 a Sunday.
	assert.Equal(t, 5, calendar.FirstWeekdayOffset(2024, 3))
	assert.Equal(t, 0, calendar.FirstWeekdayOffset(2024, 9))

	// The offset is the weekday of the cell holding day 1.
	for month := 1; month <= 12; month++ {
		offset := calendar.FirstWeekdayOffset(2025, month)
		assert.GreaterOrEqual(t, offset, 0)
		assert.LessOrEqual(t, offset, 6)

		day1 := calendar.MonthKey{Year: 2025, Month: month}.Date(1, time.UTC)
		assert.Equal(t, time.Weekday(offset), day1.Weekday())
	}
}

func TestIsSameCalendarDay(t *testing.T) {
	morning := time.Date(2024, 5, 20, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 20, 23, 59, 59, 0, time.UTC)

	assert.True(t, calendar.IsSameCalendarDay(morning, morning))
	assert.True(t, calendar.IsSameCalendarDay(morning, evening), "Time of day must be ignored")

	assert.False(t, calendar.IsSameCalendarDay(morning, morning.AddDate(0, 0, 1)))
	assert.False(t, calendar.IsSameCalendarDay(morning, morning.AddDate(0, 1, 0)))
	assert.False(t, calendar.IsSameCalendarDay(morning, morning.AddDate(1, 0, 0)))
}

func TestMonthKey_Add(t *testing.T) {
	tests := []struct {
		name   string
		from   calendar.MonthKey
		offset int
		want   calendar.MonthKey
	}{
		{"Next", calendar.MonthKey{Year: 2024, Month: 3}, 1, calendar.MonthKey{Year: 2024, Month: 4}},
		{"DecemberToJanuary", calendar.MonthKey{Year: 2024, Month: 12}, 1, calendar.MonthKey{Year: 2025, Month: 1}},
		{"JanuaryToDecember", calendar.MonthKey{Year: 2024, Month: 1}, -1, calendar.MonthKey{Year: 2023, Month: 12}},
		{"FarBack", calendar.MonthKey{Year: 2024, Month: 2}, -26, calendar.MonthKey{Year: 2021, Month: 12}},
		{"Zero", calendar.MonthKey{Year: 2024, Month: 7}, 0, calendar.MonthKey{Year: 2024, Month: 7}},
		{"YearZeroBoundary", calendar.MonthKey{Year: 0, Month: 1}, -1, calendar.MonthKey{Year: -1, Month: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Add(tt.offset))
		})
	}
}

// TestMonthKey_TwelveSteps checks that twelve single steps advance exactly one year.
func TestMonthKey_TwelveSteps(t *testing.T) {
	for month := 1; month <= 12; month++ {
		start := calendar.MonthKey{Year: 2024, Month: month}
		k := start
		for i := 0; i < 12; i++ {
			k = k.Add(1)
		}
		assert.Equal(t, calendar.MonthKey{Year: 2025, Month: month}, k)
		assert.Equal(t, start, k.Add(-12))
	}
}

func TestMonthKey_Helpers(t *testing.T) {
	k := calendar.MonthKey{Year: 2024, Month: 2}

	assert.Equal(t, "2024-02", k.String())
	assert.Equal(t, 29, k.Days())
	assert.True(t, k.Contains(29))
	assert.False(t, k.Contains(30))
	assert.False(t, k.Contains(0))
	assert.Equal(t, k, calendar.MonthOf(time.Date(2024, 2, 14, 18, 0, 0, 0, time.UTC)))
}
