// Package currency normalizes monetary amounts to two-decimal fixed point.
//
// Every amount that is stored or compared goes through Round first. Amounts are
// carried as float64 for storage compatibility, but all arithmetic that can
// accumulate drift is done in decimal.
package currency

import (
	"math"

	"github.com/shopspring/decimal"
)

const places = 2

// Round normalizes amount to the nearest hundredth, half away from zero.
// NaN and infinities normalize to 0.
func Round(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	// NewFromFloat uses the shortest decimal representation, so 1.005 rounds to 1.01
	f, _ := decimal.NewFromFloat(amount).Round(places).Float64()
	return f
}

// Add returns the rounded sum of a and b.
func Add(a, b float64) float64 {
	return Round(toDecimal(a).Add(toDecimal(b)).InexactFloat64())
}

// Sub returns the rounded difference a - b.
func Sub(a, b float64) float64 {
	return Round(toDecimal(a).Sub(toDecimal(b)).InexactFloat64())
}

// Mul returns the unrounded product of amount and factor in decimal.
// Callers round once the full expression is evaluated.
func Mul(amount, factor float64) decimal.Decimal {
	return toDecimal(amount).Mul(toDecimal(factor))
}

// Sum returns the total of amounts, rounding the running sum after every addition.
func Sum(amounts ...float64) float64 {
	total := 0.0
	for _, a := range amounts {
		total = Add(total, a)
	}
	return total
}

// Valid reports whether amount is a usable donation amount after rounding.
func Valid(amount float64) bool {
	return Round(amount) > 0
}

// Format renders amount for display, e.g. "$12.30". Never use it for arithmetic.
func Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	d := decimal.NewFromFloat(amount).Round(places)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(places)
	}
	return "$" + d.StringFixed(places)
}

func toDecimal(amount float64) decimal.Decimal {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount)
}
