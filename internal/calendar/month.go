package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-lichvannien/internal/config"
)

// Selection is the owner of the selected date. MonthView only reads it and
// reports clicks upward through Select.
type Selection interface {
	SelectedDate() time.Time
	Select(date time.Time)
}

// Cell is the derived display state of one solar day of the grid.
type Cell struct {
	Date    time.Time
	Day     int
	Weekday time.Weekday
	Weekend bool

	Selected bool
	Today    bool

	Info       *DayLunarInfo // nil when the batch has no entry for the day.
	LunarLabel string
	Pending    bool // Batch still loading; render a placeholder.
	Holiday    bool
	GoodDay    bool
}

// MonthSnapshot is an immutable copy of the calendar state.
type MonthSnapshot struct {
	Month        MonthKey
	DaysInMonth  int
	FirstWeekday int
	Loading      bool
	Batch        []DayLunarInfo
	Cells        []Cell
}

// MonthView owns the displayed month and its lunar batch.
//
// Every batch request is tagged with a generation number; a response is applied
// only if no newer request was issued for the view since. Hooks must be set
// before Start and may be called from request goroutines.
type MonthView struct {
	Source  DataSource
	Clock   Clock
	Timeout time.Duration

	OnChange func()
	OnBatch  func(month MonthKey, batch []DayLunarInfo)

	ctx       context.Context
	selection Selection

	mu      sync.Mutex
	month   MonthKey
	batch   []DayLunarInfo
	loading bool
	gen     uint64

	wg sync.WaitGroup
}

// NewMonthView creates a view on the clock's current month. No request is
// issued until Start.
func NewMonthView(ctx context.Context, source DataSource, clock Clock, selection Selection) *MonthView {
	if clock == nil {
		clock = RealClock{}
	}
	return &MonthView{
		Source:    source,
		Clock:     clock,
		Timeout:   config.RequestTimeout,
		ctx:       ctx,
		selection: selection,
		month:     MonthOf(clock.Now()),
	}
}

// Start issues the batch request for the initial month.
func (v *MonthView) Start() {
	v.Reload()
}

// Reload requests the displayed month again.
func (v *MonthView) Reload() {
	v.mu.Lock()
	gen, month := v.beginFetchLocked()
	v.mu.Unlock()

	v.notify()
	v.fetch(gen, month)
}

// NavigateMonth moves the displayed month by offset (negative goes back).
// The selected date is left untouched.
func (v *MonthView) NavigateMonth(offset int) {
	if offset == 0 {
		return
	}
	v.mu.Lock()
	target := v.month.Add(offset)
	v.mu.Unlock()
	v.ShowMonth(target)
}

// ShowMonth displays the given month. Showing the current month is a no-op.
func (v *MonthView) ShowMonth(month MonthKey) {
	month = MonthKey{Month: 1}.Add(month.Year*config.MonthsPerYear + month.Month - 1)

	v.mu.Lock()
	if month == v.month {
		v.mu.Unlock()
		return
	}
	v.month = month
	gen, key := v.beginFetchLocked()
	v.mu.Unlock()

	v.notify()
	v.fetch(gen, key)
}

// SelectDay reports the given day of the displayed month to the selection owner.
// It returns false when day is outside the month.
func (v *MonthView) SelectDay(day int) (time.Time, bool) {
	v.mu.Lock()
	month := v.month
	v.mu.Unlock()

	if !month.Contains(day) {
		return time.Time{}, false
	}
	date := month.Date(day, v.Clock.Now().Location())
	if v.selection != nil {
		v.selection.Select(date)
	}
	return date, true
}

// Month returns the displayed month.
func (v *MonthView) Month() MonthKey {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.month
}

// Snapshot derives the grid from the current state.
func (v *MonthView) Snapshot() MonthSnapshot {
	v.mu.Lock()
	month, loading := v.month, v.loading
	batch := append([]DayLunarInfo(nil), v.batch...)
	v.mu.Unlock()

	var selected time.Time
	if v.selection != nil {
		selected = v.selection.SelectedDate()
	}
	now := v.Clock.Now()

	return MonthSnapshot{
		Month:        month,
		DaysInMonth:  month.Days(),
		FirstWeekday: month.FirstWeekday(),
		Loading:      loading,
		Batch:        batch,
		Cells:        DeriveCells(month, batch, loading, selected, now),
	}
}

// Wait blocks until every issued request has settled.
func (v *MonthView) Wait() {
	v.wg.Wait()
}

func (v *MonthView) beginFetchLocked() (uint64, MonthKey) {
	v.gen++
	v.loading = true
	v.batch = nil
	return v.gen, v.month
}

func (v *MonthView) fetch(gen uint64, month MonthKey) {
	slog.Debug(config.MsgMonthRequested,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyMonth, month.String(),
		config.LogKeyGen, gen)

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()

		ctx, cancel := withTimeout(v.ctx, v.Timeout)
		defer cancel()

		start := time.Now()
		batch, err := v.Source.FetchLunarMonth(ctx, month.Year, month.Month)
		if err != nil {
			err = fmt.Errorf("%s: %w", config.ErrMonthFetch, err)
		}
		v.apply(gen, month, batch, err, time.Since(start))
	}()
}

func (v *MonthView) apply(gen uint64, month MonthKey, batch []DayLunarInfo, err error, took time.Duration) {
	log := slog.With(
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyMonth, month.String(),
		config.LogKeyGen, gen,
	)

	v.mu.Lock()
	if gen != v.gen || month != v.month {
		v.mu.Unlock()
		log.Debug(config.MsgMonthStale)
		return
	}
	v.loading = false
	if err != nil {
		v.batch = nil
		v.mu.Unlock()

		// Lunar annotations are an enrichment; the grid keeps its solar days.
		log.Warn(config.MsgMonthFailed, config.LogKeyError, err)
		v.notify()
		return
	}
	v.batch = append([]DayLunarInfo(nil), batch...)
	applied := append([]DayLunarInfo(nil), v.batch...)
	onBatch := v.OnBatch
	v.mu.Unlock()

	log.Info(config.MsgMonthApplied,
		config.LogKeyCount, len(applied),
		config.LogKeyDuration, took.Milliseconds())

	if onBatch != nil {
		onBatch(month, applied)
	}
	v.notify()
}

func (v *MonthView) notify() {
	if v.OnChange != nil {
		v.OnChange()
	}
}

// DeriveCells computes the display state of every day of month.
func DeriveCells(month MonthKey, batch []DayLunarInfo, loading bool, selected, now time.Time) []Cell {
	byDay := make(map[int]DayLunarInfo, len(batch))
	for _, info := range batch {
		if _, dup := byDay[info.SolarDay]; !dup {
			byDay[info.SolarDay] = info
		}
	}

	days := month.Days()
	cells := make([]Cell, 0, days)
	for d := 1; d <= days; d++ {
		date := month.Date(d, now.Location())
		wd := date.Weekday()
		cell := Cell{
			Date:     date,
			Day:      d,
			Weekday:  wd,
			Weekend:  wd == time.Saturday || wd == time.Sunday,
			Selected: !selected.IsZero() && IsSameCalendarDay(date, selected),
			Today:    IsSameCalendarDay(date, now),
		}

		if info, ok := byDay[d]; ok {
			cell.Info = &info
			cell.LunarLabel = LunarLabel(info)
			cell.Holiday = info.IsHoliday
			cell.GoodDay = info.IsGoodDay
		} else if loading {
			cell.Pending = true
			cell.LunarLabel = config.LunarPlaceholder
		}
		cells = append(cells, cell)
	}
	return cells
}

// LunarLabel renders the lunar day of a cell. The lunar month is appended on
// the first day of a lunar month and on the first solar day of the grid.
func LunarLabel(info DayLunarInfo) string {
	if info.LunarDay == config.LunarMonthStart || info.SolarDay == 1 {
		return fmt.Sprintf(config.LunarLabelMonthFormat, info.LunarDay, info.LunarMonth)
	}
	return fmt.Sprintf(config.LunarLabelFormat, info.LunarDay)
}
