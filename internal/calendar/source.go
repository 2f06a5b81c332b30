package calendar

import (
	"context"
	"time"
)

// DataSource is the external almanac. Every call is slow and may fail;
// implementations must honor ctx.
type DataSource interface {
	FetchDailyDetails(ctx context.Context, date time.Time) (DailyDetails, error)
	// FetchLunarMonth may return fewer entries than the month has days.
	FetchLunarMonth(ctx context.Context, year, month int) ([]DayLunarInfo, error)
	ConvertSolarToLunar(ctx context.Context, year, month, day int) (ConvertedDate, error)
	ConvertLunarToSolar(ctx context.Context, year, month, day int) (ConvertedDate, error)
}

// withTimeout applies the optional per-request deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
