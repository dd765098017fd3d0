package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"policy-illustrator/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

const disclaimer = "This illustration is hypothetical. Non-guaranteed values assume the declared " +
	"rate net of expenses is credited every year and are not a promise of future performance. " +
	"The IRR treats the final-year death benefit as a payout and ignores mortality."

type illustrationPDF struct {
	pdf     *fpdf.Fpdf
	req     domain.ProjectionRequest
	result  domain.ProjectionResult
	created time.Time
}

// PDF renders an illustration for req/result.
func PDF(req domain.ProjectionRequest, result domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, req, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WritePDF(w io.Writer, req domain.ProjectionRequest, result domain.ProjectionResult) error {
	r := &illustrationPDF{
		pdf:     fpdf.New("P", "mm", "A4", ""),
		req:     req,
		result:  result,
		created: time.Now(),
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetFooterFunc(r.footer)

	r.pdf.AddPage()
	r.addHeader()
	r.addSummary()
	r.addYearTable()
	r.addDisclaimer()

	return r.pdf.Output(w)
}

func (r *illustrationPDF) addHeader() {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Policy Illustration", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 12)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 8, r.result.Product, "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.CellFormat(contentWidth, 6, "Prepared "+r.created.Format("2 January 2006"), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *illustrationPDF) addSummary() {
	rows := [][2]string{
		{"Issue age", fmt.Sprintf("%d", r.req.Age)},
		{"Pay term", fmt.Sprintf("%d years", r.result.PayTerm)},
		{"Projection horizon", fmt.Sprintf("%d years", r.result.HorizonYears)},
		{"Face amount", money(float64(r.result.FaceAmount))},
		{"Annual premium", money(r.result.AnnualPremium)},
		{"Total premium", money(r.result.TotalPremium)},
		{"Crediting mode", r.req.CreditingMode.String()},
		{"Effective crediting rate", percent(r.result.EffectiveRate)},
		{"Illustrated IRR", r.irrText()},
	}

	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 11)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Summary", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	half := contentWidth / 2
	for _, row := range rows {
		r.pdf.CellFormat(half, 7, row[0], "L", 0, "L", true, 0, "")
		r.pdf.CellFormat(half, 7, row[1], "R", 1, "R", true, 0, "")
	}
	r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", true, 0, "")
	r.pdf.Ln(6)
}

func (r *illustrationPDF) irrText() string {
	s := percent(r.result.IRR)
	if !r.result.IRRConverged {
		s += " (approx.)"
	}
	return s
}

func (r *illustrationPDF) addYearTable() {
	headers := []string{"Year", "Age", "Premium", "Cash value", "Death benefit"}
	widths := []float64{18, 18, 44, 50, 50}

	header := func() {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(0, 51, 102)
		r.pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		r.pdf.Ln(-1)
		r.pdf.SetFont("Arial", "", 9)
		r.pdf.SetTextColor(50, 50, 50)
	}
	header()

	_, pageHeight := r.pdf.GetPageSize()
	for i, y := range r.result.Years(r.req.Age) {
		if r.pdf.GetY()+6 > pageHeight-marginBottom {
			r.pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		r.pdf.SetFillColor(245, 247, 250)
		r.pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", y.Year), "1", 0, "C", fill, 0, "")
		r.pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", y.Age), "1", 0, "C", fill, 0, "")
		r.pdf.CellFormat(widths[2], 6, money(y.Premium), "1", 0, "R", fill, 0, "")
		r.pdf.CellFormat(widths[3], 6, money(y.CashValue), "1", 0, "R", fill, 0, "")
		r.pdf.CellFormat(widths[4], 6, money(y.DeathBenefit), "1", 1, "R", fill, 0, "")
	}
	r.pdf.Ln(6)
}

func (r *illustrationPDF) addDisclaimer() {
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(110, 110, 110)
	r.pdf.MultiCell(contentWidth, 4, disclaimer, "", "L", false)
}

func (r *illustrationPDF) footer() {
	r.pdf.SetY(-15)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(128, 128, 128)
	r.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", r.pdf.PageNo()), "", 0, "C", false, 0, "")
}
