// Package catalog loads the product catalog from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"policy-illustrator/domain"
	"policy-illustrator/service"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

type file struct {
	Products []domain.PolicyProduct `yaml:"products"`
}

// Load reads a catalog file. An empty path loads the embedded default
// catalog.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Parse(defaultCatalogYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog.
func Default() *domain.Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

func Parse(data []byte) (*domain.Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Products) == 0 {
		return nil, errors.New("catalog has no products")
	}

	seen := make(map[string]bool, len(f.Products))
	var errs []error
	for i, p := range f.Products {
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("product %d: duplicate name %q", i, p.Name))
			continue
		}
		seen[p.Name] = true
		if err := validateProduct(p); err != nil {
			errs = append(errs, fmt.Errorf("product %d (%q): %w", i, p.Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return domain.NewCatalog(f.Products), nil
}

func validateProduct(p domain.PolicyProduct) error {
	switch {
	case p.Name == "":
		return errors.New("name is required")
	case p.MinIssueAge < 0 || p.MinIssueAge > p.MaxIssueAge:
		return fmt.Errorf("invalid issue ages %d-%d", p.MinIssueAge, p.MaxIssueAge)
	case len(p.PayTerms) == 0:
		return errors.New("at least one pay term is required")
	case p.BasePremPer10k <= 0:
		return errors.New("base_prem_per_10k must be positive")
	case p.DeclaredRate < 0 || p.GuaranteedRate < 0:
		return errors.New("rates must be non-negative")
	case p.MinFaceUSD < 0 || p.MinFaceUSD%10_000 != 0:
		return fmt.Errorf("min_face_usd %d must be a non-negative multiple of 10000", p.MinFaceUSD)
	}
	for _, t := range p.PayTerms {
		if t <= 0 {
			return fmt.Errorf("pay term %d must be positive", t)
		}
		if _, ok := service.TermFactor(t); !ok {
			return fmt.Errorf("pay term %d has no term factor", t)
		}
	}
	for _, s := range p.Sexes {
		if s != domain.SexMale && s != domain.SexFemale {
			return fmt.Errorf("unknown sex %q", s)
		}
	}
	return nil
}
