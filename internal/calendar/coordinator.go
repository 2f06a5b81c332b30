package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-lichvannien/internal/config"
)

// ErrDetailsUnavailable marks a failed daily details fetch.
var ErrDetailsUnavailable = errors.New(config.ErrDetailsFetch)

// DetailsState is an immutable copy of the coordinator state.
type DetailsState struct {
	Selected time.Time
	Details  *DailyDetails // nil until a fetch for Selected succeeds.
	Loading  bool
	Err      error // Wraps ErrDetailsUnavailable.
}

// Coordinator owns the selected date and its daily details.
// Responses for a selection that has since been replaced are discarded.
type Coordinator struct {
	Source  DataSource
	Clock   Clock
	Timeout time.Duration

	// OnChange is called after every state change, possibly from a request goroutine.
	OnChange func()

	ctx context.Context

	mu       sync.Mutex
	selected time.Time
	details  *DailyDetails
	loading  bool
	err      error
	gen      uint64

	wg sync.WaitGroup
}

// NewCoordinator selects today. The first fetch is issued by Start.
func NewCoordinator(ctx context.Context, source DataSource, clock Clock) *Coordinator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Coordinator{
		Source:   source,
		Clock:    clock,
		Timeout:  config.RequestTimeout,
		ctx:      ctx,
		selected: today(clock),
		loading:  true,
	}
}

// Start fetches the details of the initial selection.
func (c *Coordinator) Start() {
	c.Select(c.SelectedDate())
}

// SelectedDate returns the selected day at local midnight.
func (c *Coordinator) SelectedDate() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Select makes date the selection and requests its details. Selecting the
// current date again retries the fetch.
func (c *Coordinator) Select(date time.Time) {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.selected = date
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	c.notify()

	slog.Debug(config.MsgDetailsReq,
		config.LogKeyComponent, config.CompDetails,
		config.LogKeyDate, date.Format(config.DateFormatISO),
		config.LogKeyGen, gen)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := withTimeout(c.ctx, c.Timeout)
		defer cancel()

		details, err := c.Source.FetchDailyDetails(ctx, date)
		c.apply(gen, date, details, err)
	}()
}

// State returns a copy of the current state.
func (c *Coordinator) State() DetailsState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DetailsState{
		Selected: c.selected,
		Details:  c.details,
		Loading:  c.loading,
		Err:      c.err,
	}
}

// Wait blocks until every issued request has settled.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) apply(gen uint64, date time.Time, details DailyDetails, err error) {
	log := slog.With(
		config.LogKeyComponent, config.CompDetails,
		config.LogKeyDate, date.Format(config.DateFormatISO),
		config.LogKeyGen, gen,
	)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		log.Debug(config.MsgDetailsStale)
		return
	}
	c.loading = false
	if err != nil {
		c.details = nil
		c.err = fmt.Errorf("%w: %w", ErrDetailsUnavailable, err)
	} else {
		d := details
		c.details = &d
		c.err = nil
	}
	c.mu.Unlock()

	if err != nil {
		log.Error(config.MsgDetailsFailed, config.LogKeyError, err)
	}
	c.notify()
}

func (c *Coordinator) notify() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
