package gemini

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-lichvannien/internal/calendar"
	"github.com/tartampluch/go-lichvannien/internal/config"
	"google.golang.org/genai"
)

// Source implements calendar.DataSource on top of a Generator.
// It holds no state besides the generator and is safe for concurrent use.
type Source struct {
	Generator Generator
}

var _ calendar.DataSource = (*Source)(nil)

// NewSource wraps gen.
func NewSource(gen Generator) *Source {
	return &Source{Generator: gen}
}

// FetchDailyDetails implements calendar.DataSource.
func (s *Source) FetchDailyDetails(ctx context.Context, date time.Time) (calendar.DailyDetails, error) {
	text, err := s.complete(ctx, config.OpDailyDetails, DailyDetailsPrompt(date), DailyDetailsSchema)
	if err != nil {
		return calendar.DailyDetails{}, err
	}
	return DecodeDailyDetails(text)
}

// FetchLunarMonth implements calendar.DataSource.
func (s *Source) FetchLunarMonth(ctx context.Context, year, month int) ([]calendar.DayLunarInfo, error) {
	prompt := LunarMonthPrompt(year, month, calendar.DaysInMonth(year, month))
	text, err := s.complete(ctx, config.OpLunarMonth, prompt, LunarMonthSchema)
	if err != nil {
		return nil, err
	}
	return DecodeLunarMonth(text, year, month)
}

// ConvertSolarToLunar implements calendar.DataSource.
func (s *Source) ConvertSolarToLunar(ctx context.Context, year, month, day int) (calendar.ConvertedDate, error) {
	text, err := s.complete(ctx, config.OpSolarToLunar, SolarToLunarPrompt(year, month, day), ConversionSchema)
	if err != nil {
		return calendar.ConvertedDate{}, err
	}
	return DecodeConvertedDate(text)
}

// ConvertLunarToSolar implements calendar.DataSource.
func (s *Source) ConvertLunarToSolar(ctx context.Context, year, month, day int) (calendar.ConvertedDate, error) {
	text, err := s.complete(ctx, config.OpLunarToSolar, LunarToSolarPrompt(year, month, day), ConversionSchema)
	if err != nil {
		return calendar.ConvertedDate{}, err
	}
	return DecodeConvertedDate(text)
}

func (s *Source) complete(ctx context.Context, op, prompt string, schema *genai.Schema) (string, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompGemini,
		config.LogKeyOperation, op,
	)
	log.Debug(config.MsgCompletionReq)

	start := time.Now()
	text, err := s.Generator.Generate(ctx, prompt, schema)
	if err != nil {
		return "", err
	}

	log.Debug(config.MsgCompletionDone,
		config.LogKeySizeBytes, len(text),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return text, nil
}
