package payment

import "github.com/shopspring/decimal"

// MaxAmount is the ceiling, in minor currency units, of any single payment intent.
// Larger carts are truncated to it.
const MaxAmount int64 = 4_000_000

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a major-unit amount to minor units and applies MaxAmount.
// Fractions of a minor unit are rounded half away from zero.
func MinorUnits(amount float64) int64 {
	minor := decimal.NewFromFloat(amount).Mul(hundred).Round(0)
	if minor.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return MaxAmount
	}
	return minor.IntPart()
}
