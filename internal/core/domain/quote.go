package domain

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// CurrencyUSD is the only currency quotes are issued in.
const CurrencyUSD = "USD"

// maxUnits is 2^64, the first float64 that no longer fits in Units.
const maxUnits = 1 << 64

var ErrQuoteUnavailable = errors.New("quote service unavailable")

// Quote is a shipping cost expressed as whole units plus a sub-unit
// remainder. Subunits is always in [0, 100).
type Quote struct {
	Units    uint64
	Subunits uint32
}

// NewQuoteFromFloat normalizes a raw oracle price into a Quote.
//
// Subunits are derived from the scaled value (floor(v*100) mod 100) so that
// representation error near a unit boundary truncates instead of rounding.
// Negative and non-finite inputs yield the zero Quote.
func NewQuoteFromFloat(value float64) Quote {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return Quote{}
	}
	units := uint64(math.MaxUint64)
	if whole := math.Floor(value); whole < maxUnits {
		units = uint64(whole)
	}
	var subunits uint32
	if scaled := math.Floor(value * 100); !math.IsInf(scaled, 0) {
		subunits = uint32(math.Mod(scaled, 100))
	}
	return Quote{Units: units, Subunits: subunits}
}

// String renders the quote as "{units}.{subunits}" without zero-padding the
// subunits, so {0 1} renders as "0.1".
func (q Quote) String() string {
	return fmt.Sprintf("%d.%d", q.Units, q.Subunits)
}

// Amount returns the exact decimal value units + subunits/100.
func (q Quote) Amount() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(q.Units), 0).Add(decimal.New(int64(q.Subunits), -2))
}

// Money splits the amount into the whole units and nanos (1e-9 of a unit)
// carried by the wire money type. Units saturate at math.MaxInt64.
func (q Quote) Money() (units int64, nanos int32) {
	amount := q.Amount()
	whole := amount.Truncate(0)
	nanos = int32(amount.Sub(whole).Shift(9).IntPart())
	if whole.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return math.MaxInt64, nanos
	}
	return whole.IntPart(), nanos
}
