package calendar_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-lichvannien/internal/calendar"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockSource simulates the almanac using `testify/mock`.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchDailyDetails(ctx context.Context, date time.Time) (calendar.DailyDetails, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(calendar.DailyDetails), args.Error(1)
}

func (m *MockSource) FetchLunarMonth(ctx context.Context, year, month int) ([]calendar.DayLunarInfo, error) {
	args := m.Called(ctx, year, month)
	if b := args.Get(0); b != nil {
		return b.([]calendar.DayLunarInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSource) ConvertSolarToLunar(ctx context.Context, year, month, day int) (calendar.ConvertedDate, error) {
	args := m.Called(ctx, year, month, day)
	return args.Get(0).(calendar.ConvertedDate), args.Error(1)
}

func (m *MockSource) ConvertLunarToSolar(ctx context.Context, year, month, day int) (calendar.ConvertedDate, error) {
	args := m.Called(ctx, year, month, day)
	return args.Get(0).(calendar.ConvertedDate), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// stubSelection records selections reported by the month view.
type stubSelection struct {
	mu       sync.Mutex
	selected time.Time
	calls    int
}

func (s *stubSelection) SelectedDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *stubSelection) Select(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = date
	s.calls++
}

func (s *stubSelection) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
