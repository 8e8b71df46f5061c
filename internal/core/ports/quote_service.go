package ports

import (
	"context"

	"github.com/99minutos/shipping-service/internal/core/domain"
)

// QuoteService computes shipping quotes. Every pricing failure is reported
// as domain.ErrQuoteUnavailable.
type QuoteService interface {
	QuoteForCount(ctx context.Context, count uint32) (domain.Quote, error)
}

// QuoteRecorder is the observability sink of the quote path.
type QuoteRecorder interface {
	// RecordItems adds count to the processed items total.
	RecordItems(count uint32)
	// RecordQuote counts a quote outcome ("ok" or "unavailable").
	RecordQuote(outcome string)
}
