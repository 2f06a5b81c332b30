package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tartampluch/go-lichvannien/internal/config"
)

var (
	// ErrIncompleteInput is set when a field is empty; no request is issued.
	ErrIncompleteInput = errors.New(config.ErrIncompleteInput)
	// ErrInvalidNumber is set when a field is not an integer; no request is issued.
	ErrInvalidNumber = errors.New(config.ErrInvalidNumber)
	// ErrConversionFailed wraps data source failures.
	ErrConversionFailed = errors.New(config.ErrConversion)
)

// ConverterState is an immutable copy of the converter form.
type ConverterState struct {
	Day, Month, Year string
	Direction        Direction
	Result           *ConvertedDate
	Loading          bool
	Err              error
}

// Converter holds the date conversion form and its single request cycle.
type Converter struct {
	Source  DataSource
	Timeout time.Duration

	OnChange func()

	ctx context.Context

	mu        sync.Mutex
	day       string
	month     string
	year      string
	direction Direction
	result    *ConvertedDate
	loading   bool
	err       error

	wg sync.WaitGroup
}

// NewConverter starts in the solar to lunar direction with empty fields.
func NewConverter(ctx context.Context, source DataSource) *Converter {
	return &Converter{
		Source:  source,
		Timeout: config.RequestTimeout,
		ctx:     ctx,
	}
}

// SetInput replaces the three text fields. The result is kept.
func (c *Converter) SetInput(day, month, year string) {
	c.mu.Lock()
	c.day, c.month, c.year = day, month, year
	c.mu.Unlock()
}

// ToggleDirection flips the direction; entered fields and the last result stay.
func (c *Converter) ToggleDirection() {
	c.mu.Lock()
	c.direction = c.direction.Flip()
	c.mu.Unlock()
	c.notify()
}

// State returns a copy of the form.
func (c *Converter) State() ConverterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConverterState{
		Day:       c.day,
		Month:     c.month,
		Year:      c.year,
		Direction: c.direction,
		Result:    c.result,
		Loading:   c.loading,
		Err:       c.err,
	}
}

// Convert validates the fields and, if they are complete, issues the request
// for the current direction. Validation errors are stored and returned; the
// request outcome is delivered through State. A call during a request is ignored.
func (c *Converter) Convert() error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}

	day, month, year := strings.TrimSpace(c.day), strings.TrimSpace(c.month), strings.TrimSpace(c.year)
	if day == "" || month == "" || year == "" {
		c.err = ErrIncompleteInput
		c.mu.Unlock()
		c.notify()
		return ErrIncompleteInput
	}

	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		c.err = ErrInvalidNumber
		c.mu.Unlock()
		c.notify()
		return ErrInvalidNumber
	}

	dir := c.direction
	c.loading = true
	c.err = nil
	c.result = nil
	c.mu.Unlock()

	c.notify()

	log := slog.With(
		config.LogKeyComponent, config.CompConvert,
		config.LogKeyDirection, dir.String(),
		config.LogKeyDate, fmt.Sprintf("%04d-%02d-%02d", y, m, d),
	)
	log.Debug(config.MsgConvertReq)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := withTimeout(c.ctx, c.Timeout)
		defer cancel()

		var res ConvertedDate
		var err error
		if dir == SolarToLunar {
			res, err = c.Source.ConvertSolarToLunar(ctx, y, m, d)
		} else {
			res, err = c.Source.ConvertLunarToSolar(ctx, y, m, d)
		}

		c.mu.Lock()
		c.loading = false
		if err != nil {
			c.err = fmt.Errorf("%w: %w", ErrConversionFailed, err)
		} else {
			c.result = &res
		}
		c.mu.Unlock()

		if err != nil {
			log.Error(config.MsgConvertFailed, config.LogKeyError, err)
		}
		c.notify()
	}()
	return nil
}

// Wait blocks until the issued request has settled.
func (c *Converter) Wait() {
	c.wg.Wait()
}

func (c *Converter) notify() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
