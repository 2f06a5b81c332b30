package calendar_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
)

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var march2024 = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestView(t *testing.T, src *MockSource, now time.Time) (*calendar.MonthView, *stubSelection) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sel := &stubSelection{selected: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())}
	return calendar.NewMonthView(ctx, src, MockClock{CurrentTime: now}, sel), sel
}

func cellOf(s calendar.MonthSnapshot, day int) calendar.Cell {
	return s.Cells[day-1]
}

// -----------------------------------------------------------------------------
// Batch Fetch Protocol
// -----------------------------------------------------------------------------

func TestMonthView_InitialState(t *testing.T) {
	src := new(MockSource)
	v, _ := newTestView(t, src, march2024)

	s := v.Snapshot()
	assert.Equal(t, calendar.MonthKey{Year: 2024, Month: 3}, s.Month)
	assert.Equal(t, 31, s.DaysInMonth)
	assert.Equal(t, 5, s.FirstWeekday)
	assert.Len(t, s.Cells, 31)
	assert.Empty(t, s.Batch)

	src.AssertNotCalled(t, "FetchLunarMonth", mock.Anything, mock.Anything, mock.Anything)
}

func TestMonthView_Start_Success(t *testing.T) {
	batch := []calendar.DayLunarInfo{
		{SolarDay: 1, LunarDay: 21, LunarMonth: 1},
		{SolarDay: 10, LunarDay: 1, LunarMonth: 2, IsGoodDay: true},
	}
	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, 2024, 3).Return(batch, nil).Once()

	v, _ := newTestView(t, src, march2024)

	var mu sync.Mutex
	var gotMonth calendar.MonthKey
	var gotBatch []calendar.DayLunarInfo
	v.OnBatch = func(month calendar.MonthKey, b []calendar.DayLunarInfo) {
		mu.Lock()
		defer mu.Unlock()
		gotMonth, gotBatch = month, b
	}

	v.Start()
	assert.True(t, v.Snapshot().Loading || len(v.Snapshot().Batch) == 2)
	v.Wait()

	s := v.Snapshot()
	assert.False(t, s.Loading)
	assert.Equal(t, batch, s.Batch)
	assert.Equal(t, "21/1", cellOf(s, 1).LunarLabel)
	assert.Equal(t, "1/2", cellOf(s, 10).LunarLabel)
	assert.True(t, cellOf(s, 10).GoodDay)
	assert.True(t, cellOf(s, 10).Today)
	assert.True(t, cellOf(s, 10).Selected)
	assert.Empty(t, cellOf(s, 2).LunarLabel)
	assert.False(t, cellOf(s, 2).Pending)

	mu.Lock()
	assert.Equal(t, calendar.MonthKey{Year: 2024, Month: 3}, gotMonth)
	assert.Equal(t, batch, gotBatch)
	mu.Unlock()

	src.AssertExpectations(t)
}

func TestMonthView_LoadingPlaceholders(t *testing.T) {
	release := make(chan struct{})
	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, 2024, 3).
		Run(func(mock.Arguments) { <-release }).
		Return([]calendar.DayLunarInfo{}, nil).Once()

	v, _ := newTestView(t, src, march2024)
	v.Start()

	s := v.Snapshot()
	require.True(t, s.Loading)
	for _, c := range s.Cells {
		assert.True(t, c.Pending)
		assert.Equal(t, config.LunarPlaceholder, c.LunarLabel)
		assert.False(t, c.Holiday || c.GoodDay)
	}

	close(release)
	v.Wait()

	s = v.Snapshot()
	assert.False(t, s.Loading)
	for _, c := range s.Cells {
		assert.False(t, c.Pending)
		assert.Empty(t, c.LunarLabel)
	}
}

// TestMonthView_FetchFailure verifies the silent degradation to solar days only.
func TestMonthView_FetchFailure(t *testing.T) {
	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, 2024, 3).Return(nil, errors.New("quota exceeded")).Once()

	v, _ := newTestView(t, src, march2024)
	batchCalls := 0
	v.OnBatch = func(calendar.MonthKey, []calendar.DayLunarInfo) { batchCalls++ }

	v.Start()
	v.Wait()

	s := v.Snapshot()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Batch)
	assert.Len(t, s.Cells, 31, "Solar days are still rendered")
	for _, c := range s.Cells {
		assert.Empty(t, c.LunarLabel)
		assert.Nil(t, c.Info)
	}
	assert.Zero(t, batchCalls)
}

// TestMonthView_StaleResponseDiscarded covers March resolving after the view moved to April.
func TestMonthView_StaleResponseDiscarded(t *testing.T) {
	releaseMarch := make(chan struct{})
	releaseApril := make(chan struct{})

	marchBatch := []calendar.DayLunarInfo{{SolarDay: 1, LunarDay: 21, LunarMonth: 1}}
	aprilBatch := []calendar.DayLunarInfo{{SolarDay: 1, LunarDay: 23, LunarMonth: 2, IsHoliday: true}}

	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, 2024, 3).
		Run(func(mock.Arguments) { <-releaseMarch }).
		Return(marchBatch, nil).Once()
	src.On("FetchLunarMonth", mock.Anything, 2024, 4).
		Run(func(mock.Arguments) { <-releaseApril }).
		Return(aprilBatch, nil).Once()

	v, _ := newTestView(t, src, march2024)
	var applied []calendar.MonthKey
	var mu sync.Mutex
	v.OnBatch = func(month calendar.MonthKey, _ []calendar.DayLunarInfo) {
		mu.Lock()
		defer mu.Unlock()
		applied = append(applied, month)
	}

	v.Start()
	v.NavigateMonth(1)
	close(releaseMarch)

	// April is still in flight: March's answer must never show up.
	assert.Never(t, func() bool {
		s := v.Snapshot()
		return s.Month != calendar.MonthKey{Year: 2024, Month: 4} || !s.Loading || len(s.Batch) > 0
	}, 100*time.Millisecond, 5*time.Millisecond)

	close(releaseApril)
	v.Wait()

	s := v.Snapshot()
	assert.Equal(t, calendar.MonthKey{Year: 2024, Month: 4}, s.Month)
	assert.Equal(t, aprilBatch, s.Batch)
	assert.Equal(t, "23/2", cellOf(s, 1).LunarLabel)
	assert.True(t, cellOf(s, 1).Holiday)

	mu.Lock()
	assert.Equal(t, []calendar.MonthKey{{Year: 2024, Month: 4}}, applied)
	mu.Unlock()
	src.AssertExpectations(t)
}

// TestMonthView_ReturnToSameMonth ensures an old request for the same month
// does not win over the newer one.
func TestMonthView_ReturnToSameMonth(t *testing.T) {
	started := make(chan struct{})
	releaseFirst := make(chan struct{})
	first := []calendar.DayLunarInfo{{SolarDay: 1, LunarDay: 99, LunarMonth: 9}}
	second := []calendar.DayLunarInfo{{SolarDay: 1, LunarDay: 21, LunarMonth: 1}}

	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, 2024, 3).
		Run(func(mock.Arguments) {
			close(started)
			<-releaseFirst
		}).
		Return(first, nil).Once()
	src.On("FetchLunarMonth", mock.Anything, 2024, 4).Return(nil, errors.New("boom")).Once()
	src.On("FetchLunarMonth", mock.Anything, 2024, 3).Return(second, nil).Once()

	v, _ := newTestView(t, src, march2024)
	v.Start()
	<-started
	v.NavigateMonth(1)
	v.NavigateMonth(-1)

	// Let the second March request land before the first one.
	require.Eventually(t, func() bool { return len(v.Snapshot().Batch) == 1 }, time.Second, 5*time.Millisecond)
	close(releaseFirst)
	v.Wait()

	assert.Equal(t, second, v.Snapshot().Batch)
}

// -----------------------------------------------------------------------------
// Navigation & Selection
// -----------------------------------------------------------------------------

func TestMonthView_NavigateKeepsSelection(t *testing.T) {
	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, mock.Anything, mock.Anything).Return([]calendar.DayLunarInfo{}, nil)

	v, sel := newTestView(t, src, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC))
	before := sel.SelectedDate()

	v.NavigateMonth(1)
	v.Wait()
	assert.Equal(t, calendar.MonthKey{Year: 2025, Month: 1}, v.Month())
	assert.Equal(t, before, sel.SelectedDate())
	assert.Zero(t, sel.Calls())

	for _, c := range v.Snapshot().Cells {
		assert.False(t, c.Selected, "Selected day belongs to another month")
	}

	v.NavigateMonth(-2)
	v.Wait()
	assert.Equal(t, calendar.MonthKey{Year: 2024, Month: 11}, v.Month())

	src.AssertCalled(t, "FetchLunarMonth", mock.Anything, 2025, 1)
	src.AssertCalled(t, "FetchLunarMonth", mock.Anything, 2024, 11)
}

func TestMonthView_NavigateZeroIsNoop(t *testing.T) {
	src := new(MockSource)
	v, _ := newTestView(t, src, march2024)

	v.NavigateMonth(0)
	v.ShowMonth(calendar.MonthKey{Year: 2024, Month: 3})
	v.Wait()

	src.AssertNotCalled(t, "FetchLunarMonth", mock.Anything, mock.Anything, mock.Anything)
}

func TestMonthView_TwelveStepsAdvanceOneYear(t *testing.T) {
	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, mock.Anything, mock.Anything).Return([]calendar.DayLunarInfo{}, nil)

	v, _ := newTestView(t, src, march2024)
	for i := 0; i < 12; i++ {
		v.NavigateMonth(1)
	}
	v.Wait()

	assert.Equal(t, calendar.MonthKey{Year: 2025, Month: 3}, v.Month())
}

func TestMonthView_SelectDay(t *testing.T) {
	src := new(MockSource)
	src.On("FetchLunarMonth", mock.Anything, mock.Anything, mock.Anything).Return([]calendar.DayLunarInfo{}, nil)

	v, sel := newTestView(t, src, march2024)
	v.NavigateMonth(-1)
	v.Wait()

	date, ok := v.SelectDay(29)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, date, sel.SelectedDate())
	assert.Equal(t, calendar.MonthKey{Year: 2024, Month: 2}, v.Month(), "Selecting must not move the month")

	s := v.Snapshot()
	assert.True(t, cellOf(s, 29).Selected)
	assert.False(t, cellOf(s, 10).Selected)

	_, ok = v.SelectDay(30)
	assert.False(t, ok)
	assert.Equal(t, 1, sel.Calls())
}

// -----------------------------------------------------------------------------
// Cell Derivation
// -----------------------------------------------------------------------------

func TestDeriveCells_Markers(t *testing.T) {
	month := calendar.MonthKey{Year: 2024, Month: 3}
	batch := []calendar.DayLunarInfo{
		{SolarDay: 1, LunarDay: 15, LunarMonth: 2, IsHoliday: false, IsGoodDay: true},
	}

	cells := calendar.DeriveCells(month, batch, false, time.Time{}, march2024)

	day1 := cells[0]
	assert.Equal(t, "15/2", day1.LunarLabel)
	assert.True(t, day1.GoodDay)
	assert.False(t, day1.Holiday)
	require.NotNil(t, day1.Info)

	day2 := cells[1]
	assert.Empty(t, day2.LunarLabel)
	assert.False(t, day2.GoodDay)
	assert.False(t, day2.Holiday)
	assert.Nil(t, day2.Info)
}

func TestDeriveCells_Weekend(t *testing.T) {
	month := calendar.MonthKey{Year: 2024, Month: 3}
	cells := calendar.DeriveCells(month, nil, false, time.Time{}, march2024)

	// 2024-03-02 is a Saturday, 2024-03-03 a Sunday, 2024-03-04 a Monday.
	assert.True(t, cells[1].Weekend)
	assert.Equal(t, time.Saturday, cells[1].Weekday)
	assert.True(t, cells[2].Weekend)
	assert.False(t, cells[3].Weekend)
}

func TestDeriveCells_DuplicateSolarDayKeepsFirst(t *testing.T) {
	month := calendar.MonthKey{Year: 2024, Month: 3}
	batch := []calendar.DayLunarInfo{
		{SolarDay: 5, LunarDay: 25, LunarMonth: 1},
		{SolarDay: 5, LunarDay: 1, LunarMonth: 9},
	}
	cells := calendar.DeriveCells(month, batch, false, time.Time{}, march2024)
	assert.Equal(t, "25", cells[4].LunarLabel)
}

func TestLunarLabel(t *testing.T) {
	tests := []struct {
		name string
		info calendar.DayLunarInfo
		want string
	}{
		{"MidMonth", calendar.DayLunarInfo{SolarDay: 12, LunarDay: 16, LunarMonth: 2}, "16"},
		{"LunarMonthStart", calendar.DayLunarInfo{SolarDay: 10, LunarDay: 1, LunarMonth: 2}, "1/2"},
		{"FirstSolarDay", calendar.DayLunarInfo{SolarDay: 1, LunarDay: 15, LunarMonth: 2}, "15/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.LunarLabel(tt.info))
		})
	}
}
