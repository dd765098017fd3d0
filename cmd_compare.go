package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var compareFlags requestFlags

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare every pay term a product offers for one budget",
	Args:  cobra.NoArgs,
	RunE:  runCompare,
}

func init() {
	compareFlags.register(compareCmd, false)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	req, err := compareFlags.request(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	cmp, err := a.comparison.Compare(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  budget %.2f  best pay term %d\n\n", cmp.Product, cmp.Budget, cmp.BestPayTerm)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "pay term\tface\tirr\tfinal cash value\tfinal death benefit\tnote")
	for _, o := range cmp.Options {
		if o.Skipped {
			fmt.Fprintf(tw, "%d\t-\t-\t-\t-\t%s\n", o.PayTerm, o.SkipReason)
			continue
		}
		note := ""
		if !o.IRRConverged {
			note = "irr approximate"
		}
		fmt.Fprintf(tw, "%d\t%d\t%.4f%%\t%.2f\t%.2f\t%s\n",
			o.PayTerm, o.FaceAmount, o.IRR*100, o.FinalCashValue, o.FinalDeathBenefit, note)
	}
	return tw.Flush()
}
