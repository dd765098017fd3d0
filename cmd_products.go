package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"policy-illustrator/domain"
	"policy-illustrator/report"
)

var productFilter struct {
	sex     string
	age     int
	payTerm int
	face    int64
	feature string
	csvPath string
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products, optionally filtered",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func init() {
	fl := productsCmd.Flags()
	fl.StringVar(&productFilter.sex, "sex", "", "M or F")
	fl.IntVar(&productFilter.age, "age", 0, "issue age")
	fl.IntVar(&productFilter.payTerm, "pay-term", 0, "pay term in years")
	fl.Int64Var(&productFilter.face, "face", 0, "desired face amount")
	fl.StringVar(&productFilter.feature, "feature", "", "feature keyword")
	fl.StringVar(&productFilter.csvPath, "csv", "", `write the result as CSV to this path ("-" for stdout)`)
}

func runProducts(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	products := a.finder.Find(domain.ProductFilter{
		Sex:        domain.Sex(strings.ToUpper(productFilter.sex)),
		Age:        productFilter.age,
		PayTerm:    productFilter.payTerm,
		FaceAmount: productFilter.face,
		Feature:    productFilter.feature,
	})

	switch productFilter.csvPath {
	case "":
	case "-":
		return report.WriteProductsCSV(cmd.OutOrStdout(), products)
	default:
		if err := writeFile(productFilter.csvPath, func(w io.Writer) error {
			return report.WriteProductsCSV(w, products)
		}); err != nil {
			return err
		}
		a.log.Info("csv written", zap.String("path", productFilter.csvPath), zap.Int("products", len(products)))
	}

	printProducts(cmd.OutOrStdout(), products)
	return nil
}

func printProducts(w io.Writer, products []domain.PolicyProduct) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tages\tpay terms\tprem/10k\tdeclared\tguaranteed\tmin face")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%d-%d\t%v\t%.2f\t%.4f\t%.4f\t%d\n",
			p.Name, p.MinIssueAge, p.MaxIssueAge, p.PayTerms, p.BasePremPer10k,
			p.DeclaredRate, p.GuaranteedRate, p.MinFaceUSD)
	}
	tw.Flush()
}
