package pipeline

import (
	"go-product-analytics/internal/model"
)

// DefaultFilter builds the identity predicate for a table: every observed
// category and brand selected, price range spanning the observed min/max.
func DefaultFilter(t *model.Table) model.Filter {
	f := model.Filter{
		Categories: distinctValues(t.Records, func(r model.Record) string { return r.Category }),
		Brands:     distinctValues(t.Records, func(r model.Record) string { return r.Brand }),
	}
	if len(t.Records) > 0 {
		prices := make([]float64, len(t.Records))
		for i, r := range t.Records {
			prices[i] = r.Price
		}
		lo, hi := minMax(prices)
		f.PriceMin = &lo
		f.PriceMax = &hi
	}
	return f
}

// Apply returns the subset of rows matching the filter conjunction:
// category selected AND brand selected AND price within the inclusive
// range. Row order is preserved and the table is never mutated. A nil
// category/brand list means no restriction; an empty one selects nothing.
func Apply(t *model.Table, f model.Filter) model.FilteredView {
	view := model.FilteredView{Schema: t.Schema}

	categories := asSet(f.Categories)
	brands := asSet(f.Brands)

	for _, r := range t.Records {
		if categories != nil {
			if _, ok := categories[r.Category]; !ok {
				continue
			}
		}
		if brands != nil {
			if _, ok := brands[r.Brand]; !ok {
				continue
			}
		}
		if f.PriceMin != nil && r.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && r.Price > *f.PriceMax {
			continue
		}
		view.Records = append(view.Records, r)
	}

	return view
}

// asSet keeps the nil/empty distinction: nil in, nil out.
func asSet(vals []string) map[string]struct{} {
	if vals == nil {
		return nil
	}
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}

// distinctValues lists the distinct values of a column in first-seen order.
func distinctValues(recs []model.Record, key func(model.Record) string) []string {
	seen := make(map[string]struct{})
	var vals []string
	for _, r := range recs {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		vals = append(vals, k)
	}
	return vals
}
