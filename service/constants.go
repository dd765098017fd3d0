package service

const (
	FaceUnit = 10_000 // face amounts are whole multiples of this

	AgeFactorPivot = 30   // age factor is flat below this age
	AgeFactorStep  = 0.01 // per year above the pivot

	UnitPremiumEpsilon = 1e-9

	// Bump applied to the death benefit under IncreasePaidUp crediting.
	PaidUpBumpRatio = 0.01

	MaxBudget       = 1_000_000_000.0
	MaxRate         = 1.0 // rates are fractions, 1.0 = 100%
	MaxHorizonYears = 120
	MaxIssueAge     = 120

	DefaultHorizonYears = 30
)

// termFactors discounts the unit premium for longer pay terms.
var termFactors = map[int]float64{
	6:  1.0,
	8:  0.92,
	12: 0.85,
	20: 0.78,
}
