package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"go-product-analytics/internal/model"
	"go-product-analytics/pkg/utils"
)

// ComputeMetrics builds a MetricsSnapshot for a view. It never fails:
// on an empty view the sums are zero, the best-by lines are "N/A" and
// every average/extremum comes back not-applicable.
func ComputeMetrics(view model.FilteredView) model.MetricsSnapshot {
	recs := view.Records
	snap := model.MetricsSnapshot{
		BestByProfit:  "N/A",
		BestByRating:  "N/A",
		TopCategories: topCategoriesLine(recs, 3),
	}

	if len(recs) == 0 {
		return snap
	}

	prices := make([]float64, 0, len(recs))
	var marginSum float64
	for _, r := range recs {
		snap.TotalRevenue += r.Revenue
		snap.TotalProfit += r.Profit
		snap.TotalUnitsSold += r.UnitsSold
		marginSum += r.Margin
		prices = append(prices, r.Price)
	}

	snap.AvgPrice = model.SomeStat(mean(prices))
	snap.MedianPrice = model.SomeStat(median(prices))
	lo, hi := minMax(prices)
	snap.MinPrice = model.SomeStat(lo)
	snap.MaxPrice = model.SomeStat(hi)
	snap.AvgMargin = model.SomeStat(marginSum / float64(len(recs)))

	snap.ProductCount = productCount(view)
	snap.BrandCount = distinctBrands(recs)

	if view.Schema.HasRating {
		snap.AvgRating, snap.HighRatedPct = ratingStats(recs)
	}
	if view.Schema.HasReviews {
		snap.AvgReviews = reviewStats(recs)
	}

	if view.Schema.HasTitle {
		snap.BestByProfit = bestByProfit(recs)
		if view.Schema.HasRating {
			snap.BestByRating = bestByRating(recs)
		}
	}

	return snap
}

// productCount is the number of distinct non-empty titles, falling back
// to the row count when the dataset has no title column.
func productCount(view model.FilteredView) int {
	if !view.Schema.HasTitle {
		return len(view.Records)
	}
	titles := make(map[string]struct{}, len(view.Records))
	for _, r := range view.Records {
		if r.Title != "" {
			titles[r.Title] = struct{}{}
		}
	}
	return len(titles)
}

func distinctBrands(recs []model.Record) int {
	brands := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		brands[r.Brand] = struct{}{}
	}
	return len(brands)
}

// ratingStats returns the mean rating over rows whose rating cell was
// present, and the share of ALL rows rated above 4. An unrated row never
// counts as high-rated but stays in the percentage denominator.
func ratingStats(recs []model.Record) (avg, highPct model.Stat) {
	var sum float64
	var n, high int
	for _, r := range recs {
		if r.Rating == nil {
			continue
		}
		sum += *r.Rating
		n++
		if *r.Rating > 4 {
			high++
		}
	}
	if n == 0 {
		return model.NoStat(), model.NoStat()
	}
	return model.SomeStat(sum / float64(n)), model.SomeStat(float64(high) / float64(len(recs)) * 100)
}

func reviewStats(recs []model.Record) model.Stat {
	var sum float64
	var n int
	for _, r := range recs {
		if r.ReviewsCount == nil {
			continue
		}
		sum += *r.ReviewsCount
		n++
	}
	if n == 0 {
		return model.NoStat()
	}
	return model.SomeStat(sum / float64(n))
}

// bestByProfit reports the first row holding the maximum profit as
// "title ($X.XX)".
func bestByProfit(recs []model.Record) string {
	best := 0
	for i, r := range recs {
		if r.Profit > recs[best].Profit {
			best = i
		}
	}
	return recs[best].Title + " (" + utils.FormatMoney(recs[best].Profit) + ")"
}

// bestByRating reports the first row holding the maximum rating as
// "title (X.X)". Rows without a rating are skipped; all-unrated yields N/A.
func bestByRating(recs []model.Record) string {
	best := -1
	for i, r := range recs {
		if r.Rating == nil {
			continue
		}
		if best == -1 || *r.Rating > *recs[best].Rating {
			best = i
		}
	}
	if best == -1 {
		return "N/A"
	}
	return recs[best].Title + " (" + strconv.FormatFloat(*recs[best].Rating, 'f', 1, 64) + ")"
}

// topCategoriesLine joins the top-N categories by total units sold with
// ", ". Ties keep the order categories were first seen in.
func topCategoriesLine(recs []model.Record, n int) string {
	totals := groupSums(recs, func(r model.Record) (string, float64) {
		return r.Category, r.UnitsSold
	})
	if len(totals) > n {
		totals = totals[:n]
	}
	names := make([]string, len(totals))
	for i, t := range totals {
		names[i] = t.key
	}
	return strings.Join(names, ", ")
}

// groupSum is one group-by bucket in first-seen order.
type groupSum struct {
	key string
	sum float64
}

// groupSums groups records by a key, sums a value per group and returns
// the groups sorted descending by sum with stable first-seen tie-breaks.
func groupSums(recs []model.Record, keyVal func(model.Record) (string, float64)) []groupSum {
	index := make(map[string]int)
	var groups []groupSum
	for _, r := range recs {
		k, v := keyVal(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, groupSum{key: k})
		}
		groups[i].sum += v
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].sum > groups[j].sum })
	return groups
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
