package domain

import "math"

// Monetary amounts are computed in integer minor units (cents) so that
// line totals and subtotals add up exactly. Floats only appear at the
// storage/API boundary, converted back with CentsToAmount.

// ToCents converts a decimal amount to cents, rounding half-up at the
// cent boundary.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CentsToAmount converts cents back to a decimal amount.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}
