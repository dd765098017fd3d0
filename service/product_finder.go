package service

import (
	"slices"
	"strings"

	"policy-illustrator/domain"
)

type ProductFinder struct {
	catalog *domain.Catalog
}

func NewProductFinder(catalog *domain.Catalog) *ProductFinder {
	return &ProductFinder{catalog: catalog}
}

// Find returns the catalog products matching every non-zero filter field,
// ordered by name.
func (f *ProductFinder) Find(filter domain.ProductFilter) []domain.PolicyProduct {
	out := []domain.PolicyProduct{}
	for _, p := range f.catalog.Products() {
		if filter.Sex != "" && !p.AllowsSex(filter.Sex) {
			continue
		}
		if filter.Age > 0 && !p.AllowsAge(filter.Age) {
			continue
		}
		if filter.PayTerm > 0 && !p.AllowsPayTerm(filter.PayTerm) {
			continue
		}
		if filter.FaceAmount > 0 && filter.FaceAmount < p.MinFaceUSD {
			continue
		}
		if filter.Feature != "" && !slices.ContainsFunc(p.Features, func(s string) bool {
			return strings.EqualFold(s, filter.Feature)
		}) {
			continue
		}
		out = append(out, p)
	}
	return out
}
