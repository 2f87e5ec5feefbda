package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-product-analytics/internal/model"
	"go-product-analytics/internal/pipeline"
)

func TestComputeMetricsSums(t *testing.T) {
	table := mustLoad(t, `price,cost,units_sold,category,brand
10,4,5,A,X
20,5,2,B,Y
`)
	snap := pipeline.ComputeMetrics(table.View())

	require.Equal(t, 90.0, snap.TotalRevenue)
	require.Equal(t, 60.0, snap.TotalProfit)
	require.Equal(t, 7.0, snap.TotalUnitsSold)
	require.Equal(t, model.SomeStat(15.0), snap.AvgPrice)
	require.Equal(t, model.SomeStat(15.0), snap.MedianPrice)
	require.Equal(t, model.SomeStat(10.0), snap.MinPrice)
	require.Equal(t, model.SomeStat(20.0), snap.MaxPrice)
	require.Equal(t, model.SomeStat(10.5), snap.AvgMargin)
	require.Equal(t, 2, snap.ProductCount)
	require.Equal(t, 2, snap.BrandCount)
}

func TestComputeMetricsEmptyTable(t *testing.T) {
	snap := pipeline.ComputeMetrics(model.FilteredView{})

	require.Zero(t, snap.TotalRevenue)
	require.Zero(t, snap.TotalProfit)
	require.Zero(t, snap.TotalUnitsSold)
	require.False(t, snap.AvgPrice.Valid)
	require.False(t, snap.MedianPrice.Valid)
	require.False(t, snap.MinPrice.Valid)
	require.False(t, snap.MaxPrice.Valid)
	require.Equal(t, "N/A", snap.BestByProfit)
	require.Equal(t, "N/A", snap.BestByRating)
	require.Equal(t, "", snap.TopCategories)
}

func TestComputeMetricsWithoutRatingColumn(t *testing.T) {
	table := mustLoad(t, "title,price,cost,units_sold,category,brand\nWidget,10,4,5,A,X\n")
	snap := pipeline.ComputeMetrics(table.View())

	require.False(t, snap.AvgRating.Valid)
	require.False(t, snap.AvgReviews.Valid)
	require.False(t, snap.HighRatedPct.Valid)
	require.Equal(t, "N/A", snap.BestByRating)
	// Metrics that do not depend on optional columns still compute
	require.Equal(t, "Widget ($30.00)", snap.BestByProfit)
}

func TestComputeMetricsRatingStats(t *testing.T) {
	table := mustLoad(t, `title,price,cost,units_sold,category,brand,rating
A,10,4,5,A,X,5
B,20,5,2,B,Y,3
C,30,10,1,C,Z,4.2
D,5,1,9,A,X,2
`)
	snap := pipeline.ComputeMetrics(table.View())

	require.True(t, snap.AvgRating.Valid)
	require.InDelta(t, 3.55, snap.AvgRating.Value, 1e-9)
	require.True(t, snap.HighRatedPct.Valid)
	require.InDelta(t, 50.0, snap.HighRatedPct.Value, 1e-9)
	require.Equal(t, "A (5.0)", snap.BestByRating)
}

func TestComputeMetricsHighRatedPctCountsUnratedRows(t *testing.T) {
	table := mustLoad(t, `title,price,cost,units_sold,category,brand,rating
A,10,4,5,A,X,4.5
B,20,5,2,B,Y,3.0
C,30,10,1,C,Z,
D,5,1,9,A,X,
`)
	snap := pipeline.ComputeMetrics(table.View())

	// The mean skips the two empty cells; the >4 share does not
	require.True(t, snap.AvgRating.Valid)
	require.InDelta(t, 3.75, snap.AvgRating.Value, 1e-9)
	require.True(t, snap.HighRatedPct.Valid)
	require.InDelta(t, 25.0, snap.HighRatedPct.Value, 1e-9)
}

func TestComputeMetricsBestByProfitTieKeepsFirst(t *testing.T) {
	table := mustLoad(t, `title,price,cost,units_sold,category,brand
First,10,4,5,A,X
Second,16,10,5,B,Y
`)
	// Both rows have profit 30; first occurrence wins
	snap := pipeline.ComputeMetrics(table.View())
	require.Equal(t, "First ($30.00)", snap.BestByProfit)
}

func TestComputeMetricsTopCategories(t *testing.T) {
	table := mustLoad(t, `price,cost,units_sold,category,brand
1,0,10,Books,X
1,0,30,Toys,X
1,0,20,Garden,X
1,0,5,Office,X
`)
	snap := pipeline.ComputeMetrics(table.View())
	require.Equal(t, "Toys, Garden, Books", snap.TopCategories)
}

func TestComputeMetricsTopCategoriesTieStable(t *testing.T) {
	table := mustLoad(t, `price,cost,units_sold,category,brand
1,0,10,Books,X
1,0,10,Toys,X
1,0,10,Garden,X
`)
	// Equal sums keep first-seen category order
	snap := pipeline.ComputeMetrics(table.View())
	require.Equal(t, "Books, Toys, Garden", snap.TopCategories)
}

func TestComputeMetricsMedianOddCount(t *testing.T) {
	table := mustLoad(t, `price,cost,units_sold,category,brand
10,1,1,A,X
50,1,1,A,X
20,1,1,A,X
`)
	snap := pipeline.ComputeMetrics(table.View())
	require.Equal(t, model.SomeStat(20.0), snap.MedianPrice)
}

func TestComputeMetricsDistinctTitles(t *testing.T) {
	table := mustLoad(t, `title,price,cost,units_sold,category,brand
Widget,10,4,5,A,X
Widget,12,4,3,A,X
Gadget,20,5,2,B,Y
`)
	snap := pipeline.ComputeMetrics(table.View())
	require.Equal(t, 2, snap.ProductCount)
}
