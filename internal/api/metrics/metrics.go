// Package metrics defines and registers all custom Prometheus metrics for the
// shipping service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the router on GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shipping"

// ── Quote metrics ─────────────────────────────────────────────────────────────

// ItemsCountTotal counts the items covered by successfully computed quotes.
var ItemsCountTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_count_total",
		Help:      "Total number of cart items processed by successful quote requests.",
	},
)

// QuotesTotal counts quote computations.
// Label:
//   - outcome: "ok" or "unavailable"
var QuotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_total",
		Help:      "Total number of shipping quotes computed, by outcome.",
	},
	[]string{"outcome"},
)

// OracleRequestDuration measures a single call to the pricing oracle.
// Label:
//   - outcome: "ok" or the pricing error kind (e.g. "transport", "oracle_rejected")
var OracleRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "oracle_request_duration_seconds",
		Help:      "Duration of pricing oracle calls, by outcome.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"outcome"},
)

// ── Shipment metrics ──────────────────────────────────────────────────────────

// ShipmentsTotal counts ship-order calls.
// Label:
//   - result: "created" or "replayed" (idempotency key hit)
var ShipmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_total",
		Help:      "Total number of shipments registered, by result.",
	},
	[]string{"result"},
)

// Recorder feeds the quote path's observations into the metrics above.
// It satisfies ports.QuoteRecorder and ports.OracleRecorder.
type Recorder struct{}

func (Recorder) RecordItems(count uint32) {
	ItemsCountTotal.Add(float64(count))
}

func (Recorder) RecordQuote(outcome string) {
	QuotesTotal.WithLabelValues(outcome).Inc()
}

func (Recorder) ObserveOracleCall(outcome string, elapsed time.Duration) {
	OracleRequestDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
