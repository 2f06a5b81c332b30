package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tartampluch/go-lichvannien/internal/config"
	"google.golang.org/genai"
)

// Generator defines the contract for obtaining a schema-constrained JSON completion.
// This interface allows for mocking in tests and decoupling from the SDK.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// GenAIGenerator implements Generator with the Google Gen AI SDK.
type GenAIGenerator struct {
	Client *genai.Client
	Model  string
}

// NewGenAIGenerator creates a client for the Gemini API backend.
// The transport timeout, the response limit and the model come from settings.
func NewGenAIGenerator(ctx context.Context, settings config.Settings) (*GenAIGenerator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	limit := settings.ResponseLimit
	if limit <= 0 {
		limit = config.MaxResponseSize
	}

	cc := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout:   config.HTTPTimeout,
			Transport: &limitedTransport{base: http.DefaultTransport, limit: limit},
		},
		HTTPOptions: genai.HTTPOptions{
			BaseURL: settings.Endpoint,
			Headers: http.Header{config.HeaderUserAgent: []string{config.UserAgent}},
		},
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrClientInit, err)
	}

	slog.Debug(config.MsgClientReady,
		config.LogKeyComponent, config.CompGemini,
		config.LogKeyModel, settings.Model)

	return &GenAIGenerator{Client: client, Model: settings.Model}, nil
}

// Generate sends prompt with a JSON response constraint and returns the trimmed text.
// Oversized bodies are cut off by the transport before genai decodes them.
func (g *GenAIGenerator) Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: config.MimeJSON,
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrGenerate, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New(config.ErrEmptyResponse)
	}
	return text, nil
}

// ErrResponseTooLarge is returned by response bodies that exceed the limit.
var ErrResponseTooLarge = errors.New(config.ErrResponseTooLarge)

// limitedTransport bounds every response body it returns.
type limitedTransport struct {
	base  http.RoundTripper
	limit int64
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = &limitedBody{
		ReadCloser: resp.Body,
		r:          io.LimitReader(resp.Body, t.limit+1),
		limit:      t.limit,
	}
	return resp, nil
}

// limitedBody reads at most limit bytes and fails instead of truncating.
type limitedBody struct {
	io.ReadCloser
	r     io.Reader
	read  int64
	limit int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	b.read += int64(n)
	if b.read > b.limit {
		return 0, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, b.limit)
	}
	return n, err
}
