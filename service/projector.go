package service

import (
	"math"

	"policy-illustrator/domain"
)

var bumpRatios = map[domain.CreditingMode]float64{
	domain.IncreasePaidUp:     PaidUpBumpRatio,
	domain.AccumulateInterest: 0,
	domain.OffsetPremium:      0,
}

// EffectiveRate is the declared rate net of load, floored at the guarantee.
func EffectiveRate(declared, guaranteed, load float64) float64 {
	return math.Max(declared-load, guaranteed)
}

// BumpRatio is the share of cash value added to the death benefit for mode.
func BumpRatio(mode domain.CreditingMode) float64 {
	return bumpRatios[mode]
}

// ProjectCashValue accumulates premiums year by year. Each year the running
// value is credited first and the premium (while y <= payYears) is added
// after, i.e. premiums are paid at year end.
func ProjectCashValue(
	annualPremium float64,
	payYears, totalYears int,
	declared, guaranteed, load float64,
	mode domain.CreditingMode,
) ([]float64, float64) {
	rate := EffectiveRate(declared, guaranteed, load)
	series := make([]float64, 0, max(totalYears, 0))

	value := 0.0
	for y := 1; y <= totalYears; y++ {
		value *= 1 + rate
		if y <= payYears {
			value += annualPremium
		}
		series = append(series, value)
	}
	return series, BumpRatio(mode)
}

// DeathBenefitSeries is face + cashValue*bump for every year.
func DeathBenefitSeries(face int64, cashValues []float64, bump float64) []float64 {
	out := make([]float64, len(cashValues))
	for i, cv := range cashValues {
		out[i] = float64(face) + cv*bump
	}
	return out
}
