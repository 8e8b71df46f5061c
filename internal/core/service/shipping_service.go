package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/shipping-service/internal/core/domain"
	"github.com/99minutos/shipping-service/internal/core/ports"
)

const defaultIdempotencyTTL = time.Hour

// ShippingService issues tracking ids for shipped orders.
type ShippingService struct {
	dedup  ports.ShipmentDedup // optional
	ttl    time.Duration
	newID  func() domain.TrackingID
	logger zerolog.Logger
}

// NewShippingService returns a ShippingService. dedup may be nil, in which
// case idempotency keys are ignored.
func NewShippingService(dedup ports.ShipmentDedup, ttl time.Duration, logger zerolog.Logger) *ShippingService {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &ShippingService{dedup: dedup, ttl: ttl, newID: NewTrackingID, logger: logger}
}

// ShipOrder issues a tracking id. When an idempotency key is provided and
// was already seen, the previously issued id is returned instead. Store
// failures are logged and a fresh id is issued.
func (s *ShippingService) ShipOrder(ctx context.Context, input ports.ShipOrderInput) ports.ShipOrderResult {
	if input.IdempotencyKey == "" || s.dedup == nil {
		return s.issue(input)
	}

	existing, err := s.dedup.Lookup(ctx, input.IdempotencyKey)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency lookup failed, issuing new tracking id")
		return s.issue(input)
	}
	if existing != "" {
		s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("tracking_id", string(existing)).Msg("idempotent replay")
		return ports.ShipOrderResult{TrackingID: existing, Replayed: true}
	}

	result := s.issue(input)
	stored, err := s.dedup.Remember(ctx, input.IdempotencyKey, result.TrackingID, s.ttl)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		return result
	}
	if !stored {
		// Lost a race with a concurrent request carrying the same key.
		if winner, err := s.dedup.Lookup(ctx, input.IdempotencyKey); err == nil && winner != "" {
			return ports.ShipOrderResult{TrackingID: winner, Replayed: true}
		}
	}
	return result
}

func (s *ShippingService) issue(input ports.ShipOrderInput) ports.ShipOrderResult {
	id := s.newID()
	s.logger.Info().
		Str("tracking_id", string(id)).
		Uint32("item_count", input.ItemCount).
		Str("zip_code", input.ZipCode).
		Msg("order shipped")
	return ports.ShipOrderResult{TrackingID: id}
}
