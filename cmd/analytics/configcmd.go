package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-product-analytics/internal/config"
)

var configInitCmd = &cobra.Command{
	Use:   "config-init [path]",
	Short: "Write the current configuration to a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "analytics.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}
		fmt.Printf("✅ Wrote configuration to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configInitCmd)
}
