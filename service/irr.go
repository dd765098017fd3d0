package service

import (
	"math"
)

// SolverConfig holds the Newton-Raphson parameters for SolveIRR.
type SolverConfig struct {
	Guess float64

	// Tolerance is the step size below which the iteration is considered
	// converged.
	Tolerance float64

	MaxIterations int

	// DerivativeThreshold stops the iteration when |NPV'(r)| falls below it
	// to avoid dividing by near-zero.
	DerivativeThreshold float64
}

var DefaultSolverConfig = SolverConfig{
	Guess:               0.05,
	Tolerance:           1e-7,
	MaxIterations:       200,
	DerivativeThreshold: 1e-12,
}

type SolverOption func(*SolverConfig)

func WithGuess(g float64) SolverOption {
	return func(c *SolverConfig) { c.Guess = g }
}

func WithTolerance(tol float64) SolverOption {
	return func(c *SolverConfig) { c.Tolerance = tol }
}

func WithMaxIterations(n int) SolverOption {
	return func(c *SolverConfig) { c.MaxIterations = n }
}

type IRRResult struct {
	Rate       float64
	Iterations int
	Converged  bool
}

// NPV discounts cashflows[t] by (1+r)^t, t starting at zero.
func NPV(cashflows []float64, r float64) float64 {
	sum := 0.0
	for t, cf := range cashflows {
		sum += cf / math.Pow(1+r, float64(t))
	}
	return sum
}

// NPVDerivative is dNPV/dr.
func NPVDerivative(cashflows []float64, r float64) float64 {
	sum := 0.0
	for t, cf := range cashflows {
		sum -= float64(t) * cf / math.Pow(1+r, float64(t+1))
	}
	return sum
}

// SolveIRR runs Newton-Raphson on NPV from cfg.Guess. It returns the last
// estimate even when the tolerance was never met; Converged reports which.
// Series with several sign changes may have more than one root and the
// result then depends on the guess.
func SolveIRR(cashflows []float64, cfg SolverConfig) IRRResult {
	r := cfg.Guess
	if len(cashflows) == 0 {
		return IRRResult{Rate: r}
	}

	for i := 1; i <= cfg.MaxIterations; i++ {
		d := NPVDerivative(cashflows, r)
		if math.Abs(d) < cfg.DerivativeThreshold {
			return IRRResult{Rate: r, Iterations: i}
		}
		next := r - NPV(cashflows, r)/d
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return IRRResult{Rate: r, Iterations: i}
		}
		if math.Abs(next-r) < cfg.Tolerance {
			return IRRResult{Rate: next, Iterations: i, Converged: true}
		}
		r = next
	}
	return IRRResult{Rate: r, Iterations: cfg.MaxIterations}
}

// IRR solves with DefaultSolverConfig adjusted by opts. When the solver
// gives up, the estimate is still returned alongside ErrNonConvergence.
func IRR(cashflows []float64, opts ...SolverOption) (float64, error) {
	cfg := DefaultSolverConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	res := SolveIRR(cashflows, cfg)
	if !res.Converged {
		return res.Rate, ErrNonConvergence
	}
	return res.Rate, nil
}
