package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"go-product-analytics/internal/model"
	"go-product-analytics/pkg/utils"
)

// ExportHeader returns the normalized column order for an export. Optional
// columns appear only when the source upload carried them; the derived
// columns always come last so a re-load re-derives identical values.
func ExportHeader(schema model.Schema) []string {
	var header []string
	if schema.HasTitle {
		header = append(header, "title")
	}
	header = append(header, "category", "brand", "price", "cost", "units_sold")
	if schema.HasRating {
		header = append(header, "rating")
	}
	if schema.HasReviews {
		header = append(header, "reviews_count")
	}
	return append(header, "margin", "revenue", "profit")
}

// ExportCSV serializes a view as CSV bytes: header row plus one line per
// record, quoting handled by the writer. Deterministic and round-trippable.
func ExportCSV(view model.FilteredView) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(ExportHeader(view.Schema)); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range view.Records {
		if err := writer.Write(exportRow(r, view.Schema)); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSVFile writes a view to a CSV file on disk.
func WriteCSVFile(view model.FilteredView, path string) error {
	data, err := ExportCSV(view)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// WriteXLSXFile writes a view to a spreadsheet with the same columns as
// the CSV export.
func WriteXLSXFile(view model.FilteredView, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := ExportHeader(view.Schema)
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range view.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := xlsxRow(r, view.Schema)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}

func exportRow(r model.Record, schema model.Schema) []string {
	var row []string
	if schema.HasTitle {
		row = append(row, r.Title)
	}
	row = append(row, r.Category, r.Brand,
		utils.FormatCell(r.Price), utils.FormatCell(r.Cost), utils.FormatCell(r.UnitsSold))
	if schema.HasRating {
		row = append(row, optionalCell(r.Rating))
	}
	if schema.HasReviews {
		row = append(row, optionalCell(r.ReviewsCount))
	}
	return append(row,
		utils.FormatCell(r.Margin), utils.FormatCell(r.Revenue), utils.FormatCell(r.Profit))
}

func xlsxRow(r model.Record, schema model.Schema) []interface{} {
	var row []interface{}
	if schema.HasTitle {
		row = append(row, r.Title)
	}
	row = append(row, r.Category, r.Brand, r.Price, r.Cost, r.UnitsSold)
	if schema.HasRating {
		row = append(row, optionalValue(r.Rating))
	}
	if schema.HasReviews {
		row = append(row, optionalValue(r.ReviewsCount))
	}
	return append(row, r.Margin, r.Revenue, r.Profit)
}

func optionalCell(v *float64) string {
	if v == nil {
		return ""
	}
	return utils.FormatCell(*v)
}

func optionalValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
