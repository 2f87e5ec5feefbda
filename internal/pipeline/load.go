package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go-product-analytics/internal/model"
	"go-product-analytics/pkg/utils"
)

// Required columns. Rows missing any of these are dropped at load time.
var requiredColumns = []string{"price", "cost", "units_sold", "category", "brand"}

// Load parses a CSV stream into a normalized Table. Header names are
// lowercased, rows missing a required field are dropped silently (the
// Table only keeps the count) and margin/revenue/profit are derived for
// every retained row. A file whose header lacks a required column yields
// an empty Table, not an error; only unparseable CSV is fatal.
func Load(r io.Reader) (*model.Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err == io.EOF {
		return &model.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[utils.CleanHeader(h)] = i
	}

	table := &model.Table{
		Schema: model.Schema{
			HasTitle:   hasColumn(cols, "title"),
			HasRating:  hasColumn(cols, "rating"),
			HasReviews: hasColumn(cols, "reviews_count"),
		},
	}

	missingRequired := false
	for _, name := range requiredColumns {
		if !hasColumn(cols, name) {
			missingRequired = true
		}
	}

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		if missingRequired {
			table.Dropped++
			continue
		}

		rec, ok := buildRecord(row, cols, table.Schema)
		if !ok {
			table.Dropped++
			continue
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// LoadFile loads a CSV file from disk through the memo cache.
func LoadFile(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	return LoadBytes(data)
}

// buildRecord converts one CSV row into a Record, deriving the financial
// fields. ok=false means a required field was missing or non-numeric.
func buildRecord(row []string, cols map[string]int, schema model.Schema) (model.Record, bool) {
	var rec model.Record

	price, ok := numericCell(row, cols, "price")
	if !ok {
		return rec, false
	}
	cost, ok := numericCell(row, cols, "cost")
	if !ok {
		return rec, false
	}
	units, ok := numericCell(row, cols, "units_sold")
	if !ok {
		return rec, false
	}
	category := textCell(row, cols, "category")
	brand := textCell(row, cols, "brand")
	if category == "" || brand == "" {
		return rec, false
	}

	rec.Price = price
	rec.Cost = cost
	rec.UnitsSold = units
	rec.Category = category
	rec.Brand = brand

	if schema.HasTitle {
		rec.Title = textCell(row, cols, "title")
	}
	if schema.HasRating {
		if v, ok := numericCell(row, cols, "rating"); ok {
			rec.Rating = &v
		}
	}
	if schema.HasReviews {
		if v, ok := numericCell(row, cols, "reviews_count"); ok {
			rec.ReviewsCount = &v
		}
	}

	rec.Margin = rec.Price - rec.Cost
	rec.Revenue = rec.Price * rec.UnitsSold
	rec.Profit = rec.Margin * rec.UnitsSold
	return rec, true
}

func hasColumn(cols map[string]int, name string) bool {
	_, ok := cols[name]
	return ok
}

func textCell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func numericCell(row []string, cols map[string]int, name string) (float64, bool) {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return 0, false
	}
	return utils.ParseFloat(row[i])
}
