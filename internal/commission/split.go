// internal/commission/split.go
package commission

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MaxSplitParts = 50

	// keeps the cent count well inside int64
	maxSplitAmount = 1e12
)

var ErrInvalidSplit = errors.New("invalid split")

// Split divides a bill between diners. Base and tip are rounded to cents and
// shared out so that the shares add back up to the rounded totals; leftover
// cents go to the first shares. Every share gets its own breakdown, so the
// tier is picked per share, not for the whole bill.
func Split(baseAmount, tipAmount float64, parts int) ([]Breakdown, error) {
	if parts < 1 || parts > MaxSplitParts {
		return nil, fmt.Errorf("%w: parts must be between 1 and %d, got %d", ErrInvalidSplit, MaxSplitParts, parts)
	}
	if err := checkAmount("base amount", baseAmount); err != nil {
		return nil, err
	}
	if err := checkAmount("tip amount", tipAmount); err != nil {
		return nil, err
	}
	if baseAmount > maxSplitAmount || tipAmount > maxSplitAmount {
		return nil, fmt.Errorf("%w: amount too large to split", ErrInvalidAmount)
	}

	bases := SplitCents(decimal.NewFromFloat(baseAmount), parts)
	tips := SplitCents(decimal.NewFromFloat(tipAmount), parts)

	out := make([]Breakdown, parts)
	for i := range out {
		b, err := CalculateCommissions(bases[i].InexactFloat64(), tips[i].InexactFloat64())
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		out[i] = b
	}
	return out, nil
}

// SplitCents rounds amount to cents and spreads it over parts shares.
func SplitCents(amount decimal.Decimal, parts int) []decimal.Decimal {
	cents := amount.Shift(2).Round(0).IntPart()
	n := int64(parts)
	each, rem := cents/n, cents%n

	out := make([]decimal.Decimal, parts)
	for i := range out {
		c := each
		if int64(i) < rem {
			c++
		}
		out[i] = decimal.New(c, -2)
	}
	return out
}
