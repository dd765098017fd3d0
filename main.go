package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	envOnly    bool
)

var rootCmd = &cobra.Command{
	Use:           "illustrator",
	Short:         "Cash-value life insurance illustrations",
	Long:          `Suggests a face amount for a premium budget, projects cash value and death benefit, and estimates the IRR of the resulting cash flows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", envOr("PI_CONFIG", "config/config.yaml"), "config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&envOnly, "env-only", false, "read configuration from PI_* environment variables only")

	rootCmd.AddCommand(serveCmd, illustrateCmd, compareCmd, productsCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
