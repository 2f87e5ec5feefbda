package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-product-analytics/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Product analytics: summarize, filter and export product CSV data",
	Long: `analytics ingests an e-commerce product CSV export, derives margin,
revenue and profit per product, and computes summary metrics, rankings
and chart aggregates. Filtered subsets can be exported as CSV or XLSX.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./analytics.yaml)")
}

func loadConfig() {
	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &config.Config{ListenAddr: ":8080", DBPath: "analytics.db", ExportDir: "exports", MaxUploadMB: 64}
	}
	cfg = c
}
