package pipeline_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"go-product-analytics/internal/pipeline"
)

func TestExportHeaderOrder(t *testing.T) {
	table := mustLoad(t, sampleCSV)
	require.Equal(t,
		[]string{"title", "category", "brand", "price", "cost", "units_sold", "rating", "reviews_count", "margin", "revenue", "profit"},
		pipeline.ExportHeader(table.Schema))

	bare := mustLoad(t, "price,cost,units_sold,category,brand\n10,4,5,A,X\n")
	require.Equal(t,
		[]string{"category", "brand", "price", "cost", "units_sold", "margin", "revenue", "profit"},
		pipeline.ExportHeader(bare.Schema))
}

func TestExportCSVRoundTrip(t *testing.T) {
	table := mustLoad(t, sampleCSV)

	data, err := pipeline.ExportCSV(table.View())
	require.NoError(t, err)

	reloaded, err := pipeline.Load(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Equal(t, table.Schema, reloaded.Schema)
	require.Equal(t, table.Records, reloaded.Records)
}

func TestExportCSVQuotesEmbeddedDelimiters(t *testing.T) {
	table := mustLoad(t, "title,category,brand,price,cost,units_sold\n\"Widget, Deluxe\",A,X,10,4,5\n")
	require.Equal(t, "Widget, Deluxe", table.Records[0].Title)

	data, err := pipeline.ExportCSV(table.View())
	require.NoError(t, err)

	reloaded, err := pipeline.Load(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, reloaded.Records, 1)
	require.Equal(t, "Widget, Deluxe", reloaded.Records[0].Title)
}

func TestExportCSVEmptyView(t *testing.T) {
	table := mustLoad(t, "price,cost,units_sold,category,brand\n")
	data, err := pipeline.ExportCSV(table.View())
	require.NoError(t, err)
	require.Equal(t, "category,brand,price,cost,units_sold,margin,revenue,profit\n", string(data))
}

func TestWriteCSVFile(t *testing.T) {
	table := mustLoad(t, sampleCSV)
	path := filepath.Join(t.TempDir(), "out", "filtered_products.csv")

	require.NoError(t, pipeline.WriteCSVFile(table.View(), path))

	reloaded, err := pipeline.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, table.Records, reloaded.Records)
}

func TestWriteXLSXFile(t *testing.T) {
	table := mustLoad(t, sampleCSV)
	path := filepath.Join(t.TempDir(), "filtered_products.xlsx")

	require.NoError(t, pipeline.WriteXLSXFile(table.View(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, len(table.Records)+1)
	require.Equal(t, pipeline.ExportHeader(table.Schema), rows[0])
	require.Equal(t, "Widget A", rows[1][0])
}
