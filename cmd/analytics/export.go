package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-product-analytics/internal/model"
	"go-product-analytics/internal/pipeline"
)

var (
	exportCategories []string
	exportBrands     []string
	exportMinPrice   float64
	exportMaxPrice   float64
	exportOut        string
	exportFormat     string
)

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Filter a product CSV and export the matching rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := pipeline.LoadFile(args[0])
		if err != nil {
			return err
		}

		var filter model.Filter
		if cmd.Flags().Changed("category") {
			filter.Categories = exportCategories
		}
		if cmd.Flags().Changed("brand") {
			filter.Brands = exportBrands
		}
		if cmd.Flags().Changed("min-price") {
			filter.PriceMin = &exportMinPrice
		}
		if cmd.Flags().Changed("max-price") {
			filter.PriceMax = &exportMaxPrice
		}

		view := pipeline.Apply(table, filter)

		out := exportOut
		if out == "" {
			out = "filtered_products." + exportFormat
		}

		switch exportFormat {
		case "csv":
			err = pipeline.WriteCSVFile(view, out)
		case "xlsx":
			err = pipeline.WriteXLSXFile(view, out)
		default:
			return fmt.Errorf("unsupported export format: %s", exportFormat)
		}
		if err != nil {
			return err
		}

		fmt.Printf("💾 Exported %d of %d products to %s\n", len(view.Records), len(table.Records), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportCategories, "category", nil, "categories to keep (repeatable)")
	exportCmd.Flags().StringSliceVar(&exportBrands, "brand", nil, "brands to keep (repeatable)")
	exportCmd.Flags().Float64Var(&exportMinPrice, "min-price", 0, "inclusive lower price bound")
	exportCmd.Flags().Float64Var(&exportMaxPrice, "max-price", 0, "inclusive upper price bound")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default filtered_products.<format>)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or xlsx")
	rootCmd.AddCommand(exportCmd)
}
