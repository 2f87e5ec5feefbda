package main

import (
	"fmt"
	"os"

	"go-product-analytics/internal/api"
	"go-product-analytics/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("ANALYTICS_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
	if err := api.Serve(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}
