package model

// MetricsSnapshot is an immutable set of summary statistics computed from
// one Table or FilteredView. Sums are plain numbers (zero on an empty
// table); averages, medians and extrema are Stats so an empty or
// column-less input reads as undefined rather than zero.
type MetricsSnapshot struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalProfit    float64 `json:"total_profit"`
	TotalUnitsSold float64 `json:"total_units_sold"`

	AvgPrice    Stat `json:"avg_price"`
	MedianPrice Stat `json:"median_price"`
	MinPrice    Stat `json:"min_price"`
	MaxPrice    Stat `json:"max_price"`
	AvgMargin   Stat `json:"avg_margin"`

	ProductCount int `json:"product_count"`
	BrandCount   int `json:"brand_count"`

	// Present only when the corresponding optional column exists
	AvgRating    Stat `json:"avg_rating"`
	AvgReviews   Stat `json:"avg_reviews"`
	HighRatedPct Stat `json:"high_rated_pct"`

	BestByProfit  string `json:"best_by_profit"`
	BestByRating  string `json:"best_by_rating"`
	TopCategories string `json:"top_categories"`
}

// CategoryUnits is one bar of the units-by-category chart.
type CategoryUnits struct {
	Category string  `json:"category"`
	Units    float64 `json:"units"`
}

// BrandProfit is one bar of the profit-by-brand chart.
type BrandProfit struct {
	Brand  string  `json:"brand"`
	Profit float64 `json:"profit"`
}

// PricePoint is one dot of the margin-vs-price scatter.
type PricePoint struct {
	Price  float64 `json:"price"`
	Margin float64 `json:"margin"`
	Brand  string  `json:"brand"`
	Units  float64 `json:"units"`
}

// RatingBucket is one bin of the rating histogram, [Low, High).
// The last bucket is closed on both sides.
type RatingBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// RatingHistogram is the bucketed rating distribution. Valid is false when
// the dataset has no rating column at all.
type RatingHistogram struct {
	Buckets []RatingBucket `json:"buckets"`
	Valid   bool           `json:"valid"`
}

// TopProduct is one row of the top-by-profit ranking.
type TopProduct struct {
	Title     string  `json:"title,omitempty"`
	Brand     string  `json:"brand"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
	UnitsSold float64 `json:"units_sold"`
	Profit    float64 `json:"profit"`
}

// AggregateKind selects one of the read-only aggregation queries.
type AggregateKind string

const (
	AggUnitsByCategory    AggregateKind = "units_by_category"
	AggProfitByBrand      AggregateKind = "profit_by_brand"
	AggMarginVsPrice      AggregateKind = "margin_vs_price"
	AggRatingDistribution AggregateKind = "rating_distribution"
	AggTopProfit          AggregateKind = "top_profit"
)

// DashboardAggregates bundles every chart input for one view, the payload
// a dashboard render needs in a single round trip.
type DashboardAggregates struct {
	UnitsByCategory    []CategoryUnits `json:"units_by_category"`
	ProfitByBrand      []BrandProfit   `json:"profit_by_brand"`
	MarginVsPrice      []PricePoint    `json:"margin_vs_price"`
	RatingDistribution RatingHistogram `json:"rating_distribution"`
	TopProfit          []TopProduct    `json:"top_profit"`
}
