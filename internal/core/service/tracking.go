package service

import (
	"github.com/google/uuid"

	"github.com/99minutos/shipping-service/internal/core/domain"
)

// NewTrackingID returns a random (version 4) UUID rendered as a string.
// 122 random bits make collisions negligible over the service lifetime.
func NewTrackingID() domain.TrackingID {
	return domain.TrackingID(uuid.NewString())
}
