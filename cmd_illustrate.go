package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"policy-illustrator/domain"
	"policy-illustrator/report"
)

type requestFlags struct {
	product       string
	budget        float64
	age           int
	sex           string
	smoker        bool
	payTerm       int
	declared      float64
	guaranteed    float64
	load          float64
	creditingMode string
	horizon       int
}

func (f *requestFlags) register(cmd *cobra.Command, withPayTerm bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.product, "product", "", "product name")
	fl.Float64Var(&f.budget, "budget", 0, "annual premium budget")
	fl.IntVar(&f.age, "age", 30, "issue age")
	fl.StringVar(&f.sex, "sex", "", "M or F")
	fl.BoolVar(&f.smoker, "smoker", false, "smoker")
	if withPayTerm {
		fl.IntVar(&f.payTerm, "pay-term", 6, "premium paying years")
	}
	fl.Float64Var(&f.declared, "declared-rate", 0, "declared crediting rate (default: product rate)")
	fl.Float64Var(&f.guaranteed, "guaranteed-rate", 0, "guaranteed crediting rate (default: product rate)")
	fl.Float64Var(&f.load, "load-rate", 0, "expense load subtracted from the declared rate")
	fl.StringVar(&f.creditingMode, "crediting-mode", "increase_paid_up", "increase_paid_up | accumulate_interest | offset_premium")
	fl.IntVar(&f.horizon, "horizon", 0, "projection years (default from config)")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("budget")
}

func (f *requestFlags) request(cmd *cobra.Command) (domain.ProjectionRequest, error) {
	mode, err := domain.ParseCreditingMode(f.creditingMode)
	if err != nil {
		return domain.ProjectionRequest{}, err
	}
	req := domain.ProjectionRequest{
		Product:       f.product,
		Budget:        f.budget,
		Age:           f.age,
		Sex:           domain.Sex(f.sex),
		Smoker:        f.smoker,
		PayTerm:       f.payTerm,
		LoadRate:      f.load,
		CreditingMode: mode,
		HorizonYears:  f.horizon,
	}
	if cmd.Flags().Changed("declared-rate") {
		req.DeclaredRate = &f.declared
	}
	if cmd.Flags().Changed("guaranteed-rate") {
		req.GuaranteedRate = &f.guaranteed
	}
	return req, nil
}

var (
	illustrateFlags requestFlags
	pdfPath         string
	csvPath         string
)

var illustrateCmd = &cobra.Command{
	Use:   "illustrate",
	Short: "Print a year-by-year illustration",
	Args:  cobra.NoArgs,
	RunE:  runIllustrate,
}

func init() {
	illustrateFlags.register(illustrateCmd, true)
	illustrateCmd.Flags().StringVar(&pdfPath, "pdf", "", "also write a PDF illustration to this path")
	illustrateCmd.Flags().StringVar(&csvPath, "csv", "", "also write the table as CSV to this path")
}

func runIllustrate(cmd *cobra.Command, _ []string) error {
	req, err := illustrateFlags.request(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.illustrations.Illustrate(cmd.Context(), req)
	if err != nil {
		return err
	}

	printIllustration(cmd.OutOrStdout(), req, result)

	if pdfPath != "" {
		if err := writeFile(pdfPath, func(w io.Writer) error { return report.WritePDF(w, req, result) }); err != nil {
			return err
		}
		a.log.Info("pdf written", zap.String("path", pdfPath))
	}
	if csvPath != "" {
		if err := writeFile(csvPath, func(w io.Writer) error { return report.WriteCSV(w, req.Age, result) }); err != nil {
			return err
		}
		a.log.Info("csv written", zap.String("path", csvPath))
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func printIllustration(w io.Writer, req domain.ProjectionRequest, r domain.ProjectionResult) {
	fmt.Fprintf(w, "%s  face %d  premium %.2f x %d years  effective rate %.4f\n",
		r.Product, r.FaceAmount, r.AnnualPremium, r.PayTerm, r.EffectiveRate)
	irr := fmt.Sprintf("%.4f%%", r.IRR*100)
	if !r.IRRConverged {
		irr += " (approximate)"
	}
	fmt.Fprintf(w, "IRR %s after %d iterations\n\n", irr, r.IRRIterations)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "year\tage\tpremium\tcash value\tdeath benefit\t")
	for _, y := range r.Years(req.Age) {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%.2f\t\n", y.Year, y.Age, y.Premium, y.CashValue, y.DeathBenefit)
	}
	tw.Flush()
}
