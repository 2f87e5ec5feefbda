package pipeline

import (
	"fmt"
	"sort"

	"go-product-analytics/internal/model"
)

const (
	topBrandCount  = 15
	topProfitCount = 10
	histogramBins  = 10
)

// UnitsByCategory sums units sold per category, sorted descending.
func UnitsByCategory(view model.FilteredView) []model.CategoryUnits {
	groups := groupSums(view.Records, func(r model.Record) (string, float64) {
		return r.Category, r.UnitsSold
	})
	out := make([]model.CategoryUnits, len(groups))
	for i, g := range groups {
		out[i] = model.CategoryUnits{Category: g.key, Units: g.sum}
	}
	return out
}

// ProfitByBrand sums profit per brand, sorted descending, truncated to
// the top 15 brands.
func ProfitByBrand(view model.FilteredView) []model.BrandProfit {
	groups := groupSums(view.Records, func(r model.Record) (string, float64) {
		return r.Brand, r.Profit
	})
	if len(groups) > topBrandCount {
		groups = groups[:topBrandCount]
	}
	out := make([]model.BrandProfit, len(groups))
	for i, g := range groups {
		out[i] = model.BrandProfit{Brand: g.key, Profit: g.sum}
	}
	return out
}

// MarginVsPrice projects every row to the scatter-plot fields. No
// aggregation, pure pass-through in row order.
func MarginVsPrice(view model.FilteredView) []model.PricePoint {
	out := make([]model.PricePoint, len(view.Records))
	for i, r := range view.Records {
		out[i] = model.PricePoint{Price: r.Price, Margin: r.Margin, Brand: r.Brand, Units: r.UnitsSold}
	}
	return out
}

// RatingDistribution buckets ratings into 10 equal-width bins across the
// observed range. Not applicable without a rating column; rows with an
// empty rating cell are skipped. A single-point range collapses into the
// first bin.
func RatingDistribution(view model.FilteredView) model.RatingHistogram {
	if !view.Schema.HasRating {
		return model.RatingHistogram{}
	}

	var ratings []float64
	for _, r := range view.Records {
		if r.Rating != nil {
			ratings = append(ratings, *r.Rating)
		}
	}
	hist := model.RatingHistogram{Valid: true}
	if len(ratings) == 0 {
		return hist
	}

	lo, hi := minMax(ratings)
	width := (hi - lo) / histogramBins

	hist.Buckets = make([]model.RatingBucket, histogramBins)
	for i := range hist.Buckets {
		hist.Buckets[i].Low = lo + width*float64(i)
		hist.Buckets[i].High = lo + width*float64(i+1)
	}
	hist.Buckets[histogramBins-1].High = hi

	for _, v := range ratings {
		idx := 0
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= histogramBins {
				idx = histogramBins - 1
			}
		}
		hist.Buckets[idx].Count++
	}
	return hist
}

// TopByProfit ranks rows by profit descending with stable original-order
// tie-breaks and projects the top 10 to the preview columns.
func TopByProfit(view model.FilteredView) []model.TopProduct {
	ranked := append([]model.Record(nil), view.Records...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Profit > ranked[j].Profit })
	if len(ranked) > topProfitCount {
		ranked = ranked[:topProfitCount]
	}
	out := make([]model.TopProduct, len(ranked))
	for i, r := range ranked {
		out[i] = model.TopProduct{
			Title:     r.Title,
			Brand:     r.Brand,
			Category:  r.Category,
			Price:     r.Price,
			Cost:      r.Cost,
			UnitsSold: r.UnitsSold,
			Profit:    r.Profit,
		}
	}
	return out
}

// Aggregate dispatches one aggregation query by kind.
func Aggregate(view model.FilteredView, kind model.AggregateKind) (interface{}, error) {
	switch kind {
	case model.AggUnitsByCategory:
		return UnitsByCategory(view), nil
	case model.AggProfitByBrand:
		return ProfitByBrand(view), nil
	case model.AggMarginVsPrice:
		return MarginVsPrice(view), nil
	case model.AggRatingDistribution:
		return RatingDistribution(view), nil
	case model.AggTopProfit:
		return TopByProfit(view), nil
	default:
		return nil, fmt.Errorf("unknown aggregation kind: %s", kind)
	}
}

// AggregateAll bundles every chart input for one view.
func AggregateAll(view model.FilteredView) model.DashboardAggregates {
	return model.DashboardAggregates{
		UnitsByCategory:    UnitsByCategory(view),
		ProfitByBrand:      ProfitByBrand(view),
		MarginVsPrice:      MarginVsPrice(view),
		RatingDistribution: RatingDistribution(view),
		TopProfit:          TopByProfit(view),
	}
}
