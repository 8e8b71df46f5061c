// Package pricing talks to the external pricing oracle that maps an item
// count to a raw shipping price.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/99minutos/shipping-service/internal/core/domain"
	"github.com/99minutos/shipping-service/internal/core/ports"
)

const (
	DefaultBaseURL = "http://quote:8090"
	quotePath      = "/getquote"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 16
)

// Config captures the settings for reaching the pricing oracle.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Recorder receives the outcome and latency of every call. Optional.
	Recorder ports.OracleRecorder
}

type nopRecorder struct{}

func (nopRecorder) ObserveOracleCall(string, time.Duration) {}

type quoteRequest struct {
	NumberOfItems uint32 `json:"numberOfItems"`
}

// Client implements ports.PricingClient over HTTP. It is stateless and safe
// for concurrent use.
type Client struct {
	endpoint string
	timeout  time.Duration
	recorder ports.OracleRecorder
	http     *http.Client
	tracer   trace.Tracer
	log      zerolog.Logger
}

// NewClient builds a Client. Empty settings fall back to DefaultBaseURL and
// a 5s timeout; a nil httpClient uses a pooled default transport.
func NewClient(cfg Config, httpClient *http.Client, tracer trace.Tracer, log zerolog.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		}
	}
	return &Client{
		endpoint: base + quotePath,
		timeout:  timeout,
		recorder: recorder,
		http:     httpClient,
		tracer:   tracer,
		log:      log,
	}
}

// Endpoint returns the resolved oracle URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// RequestPrice performs a single POST to the oracle and parses its plain-text
// answer. There is no retry; every failure is a *domain.PricingError.
func (c *Client) RequestPrice(ctx context.Context, count uint32) (float64, error) {
	start := time.Now()
	log := c.log.With().
		Uint32("item_count", count).
		Str("quote_service_addr", c.endpoint).
		Logger()

	ctx, span := c.tracer.Start(ctx, "shipping.request_quote", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.Int64("app.shipping.items.count", int64(count)),
		attribute.String("http.url", c.endpoint),
		attribute.String("http.method", http.MethodPost),
	)

	if count == 0 {
		log.Warn().Msg("requesting quote for zero items")
	}

	price, err := c.do(ctx, count)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.recorder.ObserveOracleCall(err.Kind.String(), elapsed)
		log.Error().Err(err).Str("kind", err.Kind.String()).Int64("duration_ms", elapsed.Milliseconds()).Msg("pricing oracle call failed")
		return 0, err
	}

	c.recorder.ObserveOracleCall("ok", elapsed)
	if price < 0 {
		log.Warn().Float64("quote_value", price).Msg("received negative quote value")
	}
	log.Debug().Float64("quote_value", price).Int64("duration_ms", elapsed.Milliseconds()).Msg("received quote from pricing oracle")
	return price, nil
}

func (c *Client) do(ctx context.Context, count uint32) (float64, *domain.PricingError) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(quoteRequest{NumberOfItems: count})
	if err != nil {
		return 0, &domain.PricingError{Kind: domain.PricingTransport, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, &domain.PricingError{Kind: domain.PricingTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &domain.PricingError{Kind: domain.PricingTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return 0, &domain.PricingError{Kind: domain.PricingOracleRejected, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return 0, &domain.PricingError{Kind: domain.PricingBadResponse, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return 0, &domain.PricingError{Kind: domain.PricingBadResponse, Err: fmt.Errorf("response exceeds %d bytes", maxBodyBytes)}
	}
	if !utf8.Valid(body) {
		return 0, &domain.PricingError{Kind: domain.PricingBadResponse, Err: errors.New("response is not valid UTF-8")}
	}

	return parsePrice(string(body))
}

// parsePrice accepts a single finite number surrounded by optional whitespace.
func parsePrice(raw string) (float64, *domain.PricingError) {
	text := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &domain.PricingError{Kind: domain.PricingInvalidPriceFormat, Text: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.PricingError{Kind: domain.PricingInvalidPriceFormat, Text: text}
	}
	return v, nil
}
