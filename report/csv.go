package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"policy-illustrator/domain"
)

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the year-by-year illustration table.
func WriteCSV(w io.Writer, issueAge int, result domain.ProjectionResult) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "age", "premium", "cash_value", "death_benefit", "cashflow"}); err != nil {
		return err
	}
	for i, y := range result.Years(issueAge) {
		flow := 0.0
		if i < len(result.Cashflows) {
			flow = result.Cashflows[i]
		}
		if err := cw.Write([]string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Age),
			fixed(y.Premium),
			fixed(y.CashValue),
			fixed(y.DeathBenefit),
			fixed(flow),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProductsCSV writes a product search result, one product per row.
// List columns are joined with ";".
func WriteProductsCSV(w io.Writer, products []domain.PolicyProduct) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"name", "min_issue_age", "max_issue_age", "pay_terms", "base_prem_per_10k",
		"declared_rate", "guaranteed_rate", "min_face_usd", "sexes", "features",
	}); err != nil {
		return err
	}
	for _, p := range products {
		terms := make([]string, len(p.PayTerms))
		for i, t := range p.PayTerms {
			terms[i] = strconv.Itoa(t)
		}
		sexes := make([]string, len(p.Sexes))
		for i, s := range p.Sexes {
			sexes[i] = string(s)
		}
		if err := cw.Write([]string{
			p.Name,
			strconv.Itoa(p.MinIssueAge),
			strconv.Itoa(p.MaxIssueAge),
			strings.Join(terms, ";"),
			fixed(p.BasePremPer10k),
			decimal.NewFromFloat(p.DeclaredRate).String(),
			decimal.NewFromFloat(p.GuaranteedRate).String(),
			strconv.FormatInt(p.MinFaceUSD, 10),
			strings.Join(sexes, ";"),
			strings.Join(p.Features, ";"),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
