package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/99minutos/shipping-service/internal/core/domain"
	"github.com/99minutos/shipping-service/internal/core/ports"
)

const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
)

// QuoteService turns an item count into a Quote by asking the pricing
// oracle and normalizing its answer.
type QuoteService struct {
	pricing  ports.PricingClient
	recorder ports.QuoteRecorder
	logger   zerolog.Logger
}

func NewQuoteService(pricing ports.PricingClient, recorder ports.QuoteRecorder, logger zerolog.Logger) *QuoteService {
	return &QuoteService{pricing: pricing, recorder: recorder, logger: logger}
}

// QuoteForCount returns the shipping quote for count items. Any pricing
// failure is logged with its cause and reported as domain.ErrQuoteUnavailable.
func (s *QuoteService) QuoteForCount(ctx context.Context, count uint32) (domain.Quote, error) {
	log := s.logger.With().Uint32("item_count", count).Logger()

	price, err := s.pricing.RequestPrice(ctx, count)
	if err != nil {
		log.Error().Err(err).Msg("failed to get quote from pricing oracle")
		s.recorder.RecordQuote(OutcomeUnavailable)
		return domain.Quote{}, domain.ErrQuoteUnavailable
	}

	s.recorder.RecordItems(count)
	s.recorder.RecordQuote(OutcomeOK)

	q := domain.NewQuoteFromFloat(price)
	if price < 0 {
		log.Warn().Float64("raw_quote_value", price).Msg("negative quote value normalized to zero")
	}

	span := trace.SpanFromContext(ctx)
	attrs := []attribute.KeyValue{
		attribute.String("app.shipping.cost.total", q.String()),
		attribute.Int64("app.shipping.cost.dollars", int64(q.Units)),
		attribute.Int64("app.shipping.cost.cents", int64(q.Subunits)),
		attribute.Int64("app.shipping.items.count", int64(count)),
	}
	span.AddEvent("Quote Calculated", trace.WithAttributes(attrs...))
	span.SetAttributes(attrs[0], attrs[3])

	log.Info().
		Float64("raw_quote_value", price).
		Uint64("quote_dollars", q.Units).
		Uint32("quote_cents", q.Subunits).
		Str("quote_amount", q.Amount().StringFixed(2)).
		Msg("quote calculated")

	return q, nil
}
