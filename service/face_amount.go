package service

import "math"

const maxUnits = math.MaxInt64 / FaceUnit

// AgeFactor is 1.0 up to the pivot age and grows one percent per year after.
func AgeFactor(age int) float64 {
	return 1 + float64(max(0, age-AgeFactorPivot))*AgeFactorStep
}

// TermFactor looks up the pay-term discount. Unknown terms report ok=false
// and a neutral factor of 1.0.
func TermFactor(payTerm int) (float64, bool) {
	f, ok := termFactors[payTerm]
	if !ok {
		return 1.0, false
	}
	return f, true
}

// UnitPremium estimates the annual premium for one FaceUnit of cover.
func UnitPremium(basePremPer10k float64, age, payTerm int) float64 {
	tf, _ := TermFactor(payTerm)
	unit := basePremPer10k * AgeFactor(age) / math.Max(tf, UnitPremiumEpsilon)
	return math.Max(unit, UnitPremiumEpsilon)
}

// SuggestFaceAmount returns the largest face amount, in whole FaceUnits, whose
// estimated premium fits in budget. The result is never negative.
func SuggestFaceAmount(budget, basePremPer10k float64, age, payTerm int) int64 {
	if !(budget > 0) || math.IsInf(budget, 0) {
		return 0
	}
	units := math.Floor(budget / UnitPremium(basePremPer10k, age, payTerm))
	if units <= 0 {
		return 0
	}
	if units > maxUnits {
		units = maxUnits
	}
	return int64(units) * FaceUnit
}
