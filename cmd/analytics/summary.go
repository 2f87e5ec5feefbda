package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go-product-analytics/internal/model"
	"go-product-analytics/internal/pipeline"
	"go-product-analytics/pkg/utils"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file.csv>",
	Short: "Print the metrics snapshot for a product CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := pipeline.LoadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("📄 Loaded %d products (%d rows dropped)\n\n", len(table.Records), table.Dropped)
		printSnapshot(pipeline.ComputeMetrics(table.View()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func printSnapshot(snap model.MetricsSnapshot) {
	fmt.Println("📈 Key Metrics")
	fmt.Printf("  Total Revenue:            %s\n", utils.FormatMoney(snap.TotalRevenue))
	fmt.Printf("  Total Profit:             %s\n", utils.FormatMoney(snap.TotalProfit))
	fmt.Printf("  Total Units Sold:         %.0f\n", snap.TotalUnitsSold)
	fmt.Printf("  Average Price:            %s\n", moneyStat(snap.AvgPrice))
	fmt.Printf("  Median Price:             %s\n", moneyStat(snap.MedianPrice))
	fmt.Printf("  Price Min:                %s\n", moneyStat(snap.MinPrice))
	fmt.Printf("  Price Max:                %s\n", moneyStat(snap.MaxPrice))
	fmt.Printf("  Average Margin:           %s\n", moneyStat(snap.AvgMargin))
	fmt.Printf("  Number of Products:       %d\n", snap.ProductCount)
	fmt.Printf("  Number of Unique Brands:  %d\n", snap.BrandCount)
	fmt.Printf("  Average Rating:           %s\n", plainStat(snap.AvgRating, 2))
	fmt.Printf("  Average Reviews:          %s\n", plainStat(snap.AvgReviews, 1))
	fmt.Printf("  Rated > 4 (%%):            %s\n", plainStat(snap.HighRatedPct, 1))
	fmt.Println()
	fmt.Printf("🏆 Best Product by Profit:  %s\n", snap.BestByProfit)
	fmt.Printf("⭐ Best Product by Rating:  %s\n", snap.BestByRating)
	fmt.Printf("📦 Top Categories by Units: %s\n", snap.TopCategories)
}

func moneyStat(s model.Stat) string {
	if !s.Valid {
		return "N/A"
	}
	return utils.FormatMoney(s.Value)
}

func plainStat(s model.Stat, decimals int) string {
	if !s.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(s.Value, 'f', decimals, 64)
}
