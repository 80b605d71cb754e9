package billing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Finite reports whether v can take part in a money calculation.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round2 rounds to cents, half-up. Non-finite input yields 0.
func Round2(v float64) float64 {
	if !Finite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func dec(v float64) decimal.Decimal {
	if !Finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
