package domain

type PayTermOption struct {
	PayTerm           int     `json:"pay_term"`
	FaceAmount        int64   `json:"face_amount"`
	IRR               float64 `json:"irr"`
	IRRConverged      bool    `json:"irr_converged"`
	FinalCashValue    float64 `json:"final_cash_value"`
	FinalDeathBenefit float64 `json:"final_death_benefit"`
	Skipped           bool    `json:"skipped,omitempty"`
	SkipReason        string  `json:"skip_reason,omitempty"`
}

type PayTermComparison struct {
	Product     string          `json:"product"`
	Budget      float64         `json:"budget"`
	BestPayTerm int             `json:"best_pay_term"`
	Options     []PayTermOption `json:"options"`
}

// ProductFilter mirrors the search panel of the product finder. Zero values
// are ignored.
type ProductFilter struct {
	Sex        Sex
	Age        int
	PayTerm    int
	FaceAmount int64
	Feature    string
}
