package domain

import (
	"slices"
	"sort"
)

// PolicyProduct is a reference record from the product catalog. It is
// loaded once at startup and only ever read afterwards.
type PolicyProduct struct {
	Name           string   `yaml:"name" json:"name"`
	MinIssueAge    int      `yaml:"min_issue_age" json:"min_issue_age"`
	MaxIssueAge    int      `yaml:"max_issue_age" json:"max_issue_age"`
	PayTerms       []int    `yaml:"pay_terms" json:"pay_terms"`
	BasePremPer10k float64  `yaml:"base_prem_per_10k" json:"base_prem_per_10k"`
	DeclaredRate   float64  `yaml:"declared_rate" json:"declared_rate"`
	GuaranteedRate float64  `yaml:"guaranteed_rate" json:"guaranteed_rate"`
	MinFaceUSD     int64    `yaml:"min_face_usd" json:"min_face_usd"`
	Sexes          []Sex    `yaml:"sexes,omitempty" json:"sexes,omitempty"` // empty = any
	Features       []string `yaml:"features,omitempty" json:"features,omitempty"`
}

func (p PolicyProduct) AllowsPayTerm(term int) bool {
	return slices.Contains(p.PayTerms, term)
}

func (p PolicyProduct) AllowsAge(age int) bool {
	return age >= p.MinIssueAge && age <= p.MaxIssueAge
}

func (p PolicyProduct) AllowsSex(sex Sex) bool {
	if len(p.Sexes) == 0 || sex == "" {
		return true
	}
	return slices.Contains(p.Sexes, sex)
}

// Catalog is an immutable set of products keyed by name.
type Catalog struct {
	byName map[string]PolicyProduct
	names  []string
}

// NewCatalog copies the given products into a Catalog. Callers are expected
// to have validated the products (see catalog.Load).
func NewCatalog(products []PolicyProduct) *Catalog {
	c := &Catalog{
		byName: make(map[string]PolicyProduct, len(products)),
		names:  make([]string, 0, len(products)),
	}
	for _, p := range products {
		p.PayTerms = slices.Clone(p.PayTerms)
		p.Sexes = slices.Clone(p.Sexes)
		p.Features = slices.Clone(p.Features)
		c.byName[p.Name] = p
		c.names = append(c.names, p.Name)
	}
	sort.Strings(c.names)
	return c
}

func (c *Catalog) Get(name string) (PolicyProduct, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Products returns every product ordered by name.
func (c *Catalog) Products() []PolicyProduct {
	out := make([]PolicyProduct, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.names)
}
