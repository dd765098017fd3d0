package service

import "github.com/shopspring/decimal"

// roundCurrency rounds v half away from zero to cents.
func roundCurrency(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// totalPremium is premium*years computed in decimal so that long pay terms
// do not accumulate float error.
func totalPremium(premium float64, years int) float64 {
	return decimal.NewFromFloat(premium).
		Mul(decimal.NewFromInt(int64(years))).
		Round(2).
		InexactFloat64()
}
