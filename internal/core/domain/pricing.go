package domain

import "fmt"

// PricingErrorKind classifies how a call to the pricing oracle failed.
type PricingErrorKind int

const (
	// PricingTransport covers connection refused, timeouts, DNS and similar.
	PricingTransport PricingErrorKind = iota + 1
	// PricingOracleRejected means the oracle answered with a non-2xx status.
	PricingOracleRejected
	// PricingBadResponse means the body could not be read or was not UTF-8.
	PricingBadResponse
	// PricingInvalidPriceFormat means the trimmed body is not a finite number.
	PricingInvalidPriceFormat
)

func (k PricingErrorKind) String() string {
	switch k {
	case PricingTransport:
		return "transport"
	case PricingOracleRejected:
		return "oracle_rejected"
	case PricingBadResponse:
		return "bad_response"
	case PricingInvalidPriceFormat:
		return "invalid_price_format"
	default:
		return "unknown"
	}
}

// PricingError is returned by the pricing client for every failed call.
type PricingError struct {
	Kind   PricingErrorKind
	Status int    // set for PricingOracleRejected
	Text   string // set for PricingInvalidPriceFormat
	Err    error
}

func (e *PricingError) Error() string {
	var msg string
	switch e.Kind {
	case PricingOracleRejected:
		msg = fmt.Sprintf("pricing oracle returned status %d", e.Status)
	case PricingInvalidPriceFormat:
		msg = fmt.Sprintf("invalid quote format %q", e.Text)
	case PricingTransport:
		msg = "pricing oracle request failed"
	case PricingBadResponse:
		msg = "pricing oracle response unreadable"
	default:
		msg = "pricing error"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *PricingError) Unwrap() error {
	return e.Err
}
