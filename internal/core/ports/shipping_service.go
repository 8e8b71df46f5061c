package ports

import (
	"context"
	"time"

	"github.com/99minutos/shipping-service/internal/core/domain"
)

// ShipOrderInput carries the ship-order request. Every field is optional.
type ShipOrderInput struct {
	ItemCount      uint32
	ZipCode        string
	IdempotencyKey string
}

// ShipOrderResult is returned by ShipOrder.
type ShipOrderResult struct {
	TrackingID domain.TrackingID
	// Replayed is true when the Idempotency-Key matched an earlier call.
	Replayed bool
}

// ShippingService registers shipments. ShipOrder never fails.
type ShippingService interface {
	ShipOrder(ctx context.Context, input ShipOrderInput) ShipOrderResult
}

// ShipmentDedup remembers which tracking id was issued for an idempotency key.
type ShipmentDedup interface {
	// Lookup returns the tracking id stored for key, or "" when none is stored.
	Lookup(ctx context.Context, key string) (domain.TrackingID, error)
	// Remember stores id for key for ttl. It reports false when another
	// request already claimed the key.
	Remember(ctx context.Context, key string, id domain.TrackingID, ttl time.Duration) (bool, error)
}
