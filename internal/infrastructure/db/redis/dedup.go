package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/shipping-service/internal/core/domain"
)

// ShipmentDedup implements ports.ShipmentDedup backed by Redis.
// Key format: shiporder:idem:<idempotency_key>
type ShipmentDedup struct {
	client *redis.Client
}

// NewShipmentDedup creates a ShipmentDedup wrapping the given Redis client.
func NewShipmentDedup(client *redis.Client) *ShipmentDedup {
	return &ShipmentDedup{client: client}
}

// Lookup returns the tracking id issued for key, or "" if the key is unknown
// or expired.
func (d *ShipmentDedup) Lookup(ctx context.Context, key string) (domain.TrackingID, error) {
	v, err := d.client.Get(ctx, d.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return domain.TrackingID(v), nil
}

// Remember stores id under key with SET NX so the first writer wins.
func (d *ShipmentDedup) Remember(ctx context.Context, key string, id domain.TrackingID, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(key), string(id), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency store: %w", err)
	}
	return ok, nil
}

func (d *ShipmentDedup) key(idempotencyKey string) string {
	return "shiporder:idem:" + idempotencyKey
}
