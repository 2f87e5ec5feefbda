package main

import (
	"github.com/spf13/cobra"

	"go-product-analytics/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analytics HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Serve(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
