package domain

import (
	"fmt"
	"strings"
)

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// CreditingMode says how excess interest is applied to the policy.
type CreditingMode int

const (
	IncreasePaidUp CreditingMode = iota + 1
	AccumulateInterest
	OffsetPremium
)

var creditingModeNames = map[CreditingMode]string{
	IncreasePaidUp:     "increase_paid_up",
	AccumulateInterest: "accumulate_interest",
	OffsetPremium:      "offset_premium",
}

func (m CreditingMode) String() string {
	if s, ok := creditingModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("CreditingMode(%d)", int(m))
}

func (m CreditingMode) Valid() bool {
	_, ok := creditingModeNames[m]
	return ok
}

// ParseCreditingMode accepts the names produced by String, case-insensitively.
func ParseCreditingMode(s string) (CreditingMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range creditingModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown crediting mode %q", s)
}

func (m CreditingMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid crediting mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *CreditingMode) UnmarshalText(b []byte) error {
	parsed, err := ParseCreditingMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ProjectionRequest is one illustration query. DeclaredRate and
// GuaranteedRate fall back to the product's rates when nil.
type ProjectionRequest struct {
	Product        string        `json:"product"`
	Budget         float64       `json:"budget"`
	Age            int           `json:"age"`
	Sex            Sex           `json:"sex"`
	Smoker         bool          `json:"smoker"`
	PayTerm        int           `json:"pay_term"`
	DeclaredRate   *float64      `json:"declared_rate,omitempty"`
	GuaranteedRate *float64      `json:"guaranteed_rate,omitempty"`
	LoadRate       float64       `json:"load_rate"`
	CreditingMode  CreditingMode `json:"crediting_mode"`
	HorizonYears   int           `json:"horizon_years"`
}

type ProjectionResult struct {
	Product       string    `json:"product"`
	PayTerm       int       `json:"pay_term"`
	HorizonYears  int       `json:"horizon_years"`
	FaceAmount    int64     `json:"face_amount"`
	AnnualPremium float64   `json:"annual_premium"`
	TotalPremium  float64   `json:"total_premium"`
	EffectiveRate float64   `json:"effective_rate"`
	BumpRatio     float64   `json:"bump_ratio"`
	CashValues    []float64 `json:"cash_values"`
	DeathBenefits []float64 `json:"death_benefits"`
	Cashflows     []float64 `json:"cashflows"`
	IRR           float64   `json:"irr"`
	IRRIterations int       `json:"irr_iterations"`
	IRRConverged  bool      `json:"irr_converged"`
}

// Year is one row of an illustration table.
type Year struct {
	Year         int
	Age          int
	Premium      float64
	CashValue    float64
	DeathBenefit float64
}

// Years zips the result series into table rows, starting at issueAge+1.
func (r ProjectionResult) Years(issueAge int) []Year {
	rows := make([]Year, len(r.CashValues))
	for i := range r.CashValues {
		premium := 0.0
		if i < r.PayTerm {
			premium = r.AnnualPremium
		}
		rows[i] = Year{
			Year:         i + 1,
			Age:          issueAge + i + 1,
			Premium:      premium,
			CashValue:    r.CashValues[i],
			DeathBenefit: r.DeathBenefits[i],
		}
	}
	return rows
}
