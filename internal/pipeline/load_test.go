package pipeline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go-product-analytics/internal/model"
	"go-product-analytics/internal/pipeline"
)

const sampleCSV = `title,category,brand,price,cost,units_sold,rating,reviews_count
Widget A,A,X,10,4,5,4.5,120
Widget B,B,Y,20,5,2,3.8,40
`

func mustLoad(t *testing.T, csvData string) *model.Table {
	t.Helper()
	table, err := pipeline.Load(strings.NewReader(csvData))
	require.NoError(t, err)
	return table
}

func TestLoadDerivesFinancialFields(t *testing.T) {
	table := mustLoad(t, sampleCSV)
	require.Len(t, table.Records, 2)
	require.Equal(t, 0, table.Dropped)

	for _, r := range table.Records {
		require.Equal(t, r.Price-r.Cost, r.Margin)
		require.Equal(t, r.Price*r.UnitsSold, r.Revenue)
		require.Equal(t, r.Margin*r.UnitsSold, r.Profit)
	}

	first := table.Records[0]
	require.Equal(t, "Widget A", first.Title)
	require.Equal(t, 6.0, first.Margin)
	require.Equal(t, 50.0, first.Revenue)
	require.Equal(t, 30.0, first.Profit)
}

func TestLoadNormalizesHeaderCase(t *testing.T) {
	table := mustLoad(t, "PRICE,Cost,Units_Sold,CATEGORY,Brand\n10,4,5,A,X\n")
	require.Len(t, table.Records, 1)
	require.Equal(t, "A", table.Records[0].Category)
	require.Equal(t, "X", table.Records[0].Brand)
}

func TestLoadDropsRowsMissingRequiredFields(t *testing.T) {
	csvData := `price,cost,units_sold,category,brand
10,4,5,A,X
,4,5,A,X
20,5,2,B,
abc,5,2,B,Y
30,10,1,C,Z
`
	table := mustLoad(t, csvData)
	require.Len(t, table.Records, 2)
	require.Equal(t, 3, table.Dropped)
	require.Equal(t, "A", table.Records[0].Category)
	require.Equal(t, "C", table.Records[1].Category)
}

func TestLoadMissingRequiredColumnYieldsEmptyTable(t *testing.T) {
	// No brand column at all: every row is dropped, not an error
	table := mustLoad(t, "price,cost,units_sold,category\n10,4,5,A\n20,5,2,B\n")
	require.Empty(t, table.Records)
	require.Equal(t, 2, table.Dropped)
}

func TestLoadOptionalColumnSchema(t *testing.T) {
	table := mustLoad(t, "price,cost,units_sold,category,brand\n10,4,5,A,X\n")
	require.False(t, table.Schema.HasTitle)
	require.False(t, table.Schema.HasRating)
	require.False(t, table.Schema.HasReviews)

	table = mustLoad(t, sampleCSV)
	require.True(t, table.Schema.HasTitle)
	require.True(t, table.Schema.HasRating)
	require.True(t, table.Schema.HasReviews)
}

func TestLoadKeepsRowWithEmptyOptionalCell(t *testing.T) {
	csvData := `title,category,brand,price,cost,units_sold,rating
Widget A,A,X,10,4,5,4.5
Widget B,B,Y,20,5,2,
`
	table := mustLoad(t, csvData)
	require.Len(t, table.Records, 2)
	require.NotNil(t, table.Records[0].Rating)
	require.Equal(t, 4.5, *table.Records[0].Rating)
	require.Nil(t, table.Records[1].Rating)
}

func TestLoadMalformedCSVFails(t *testing.T) {
	_, err := pipeline.Load(strings.NewReader("price,cost,units_sold,category,brand\n10,4\n"))
	require.Error(t, err)
}

func TestLoadBytesMemoizesByContent(t *testing.T) {
	pipeline.ResetCache()
	t.Cleanup(pipeline.ResetCache)

	data := []byte(sampleCSV)
	first, err := pipeline.LoadBytes(data)
	require.NoError(t, err)
	second, err := pipeline.LoadBytes(data)
	require.NoError(t, err)
	require.Same(t, first, second)

	other, err := pipeline.LoadBytes([]byte("price,cost,units_sold,category,brand\n10,4,5,A,X\n"))
	require.NoError(t, err)
	require.NotSame(t, first, other)
}

func TestLoadBytesParseFailureKeepsCachedTable(t *testing.T) {
	pipeline.ResetCache()
	t.Cleanup(pipeline.ResetCache)

	data := []byte(sampleCSV)
	first, err := pipeline.LoadBytes(data)
	require.NoError(t, err)

	_, err = pipeline.LoadBytes([]byte("price,cost\n10\n"))
	require.Error(t, err)

	again, err := pipeline.LoadBytes(data)
	require.NoError(t, err)
	require.Same(t, first, again)
}
