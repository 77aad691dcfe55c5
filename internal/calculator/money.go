package calculator

import "github.com/shopspring/decimal"

// noiseFloor filters float noise: a pair must exceed it to be reported.
const noiseFloor = 0.01

var (
	hundred = decimal.NewFromInt(100)
	// percentageTolerance is how far a percentage split may drift from 100.
	percentageTolerance = decimal.RequireFromString("0.01")
)

// Round2 rounds v to cents, half away from zero. NaN and infinities are
// returned unchanged.
func Round2(v float64) float64 {
	if !finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// share computes round(amount * pct / 100, 2) without float drift in the product.
func share(amount, pct float64) float64 {
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(hundred).
		Round(2).
		InexactFloat64()
}
