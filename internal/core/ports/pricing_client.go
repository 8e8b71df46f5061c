package ports

import (
	"context"
	"time"
)

// PricingClient asks the external pricing oracle for the raw price of
// shipping count items. Implementations perform exactly one call per
// invocation and return *domain.PricingError on failure.
type PricingClient interface {
	RequestPrice(ctx context.Context, count uint32) (float64, error)
}

// OracleRecorder observes pricing oracle calls. outcome is "ok" or the
// pricing error kind.
type OracleRecorder interface {
	ObserveOracleCall(outcome string, elapsed time.Duration)
}
