package model

// Record represents a single product row after loading.
// Margin, Revenue and Profit are derived once at load time and are never
// recomputed; the loader is the only writer of a Record.
type Record struct {
	Title     string  `json:"title,omitempty"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Cost      float64 `json:"cost"`
	UnitsSold float64 `json:"units_sold"`

	// Optional columns; nil when the cell (or the whole column) is missing
	Rating       *float64 `json:"rating,omitempty"`
	ReviewsCount *float64 `json:"reviews_count,omitempty"`

	// Derived fields
	Margin  float64 `json:"margin"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Schema describes which optional columns were present in the upload.
// It is computed once by the loader so downstream code never has to probe
// individual records for column existence.
type Schema struct {
	HasTitle   bool `json:"has_title"`
	HasRating  bool `json:"has_rating"`
	HasReviews bool `json:"has_reviews"`
}

// Table is the normalized, fully materialized result of one upload.
// Records keep their input order. Dropped counts the rows discarded for
// missing required fields.
type Table struct {
	Records []Record `json:"records"`
	Schema  Schema   `json:"schema"`
	Dropped int      `json:"dropped"`
}

// View returns the identity FilteredView over the whole table.
func (t *Table) View() FilteredView {
	return FilteredView{Records: t.Records, Schema: t.Schema}
}

// FilteredView is a subset of a Table's rows in original order. It shares
// the backing records with the Table and must never be mutated.
type FilteredView struct {
	Records []Record `json:"records"`
	Schema  Schema   `json:"schema"`
}

// Filter is a conjunction of categorical and range predicates.
// A nil Categories/Brands slice means "no restriction"; an empty non-nil
// slice selects nothing. A nil price bound leaves that side open.
type Filter struct {
	Categories []string `json:"categories,omitempty"`
	Brands     []string `json:"brands,omitempty"`
	PriceMin   *float64 `json:"price_min,omitempty"`
	PriceMax   *float64 `json:"price_max,omitempty"`
}

// Stat is a scalar metric that may be not-applicable (e.g. mean rating on
// a dataset without a rating column). Valid=false means "undefined", which
// is distinct from a genuine zero.
type Stat struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// SomeStat wraps a defined value.
func SomeStat(v float64) Stat { return Stat{Value: v, Valid: true} }

// NoStat is the not-applicable marker.
func NoStat() Stat { return Stat{} }
