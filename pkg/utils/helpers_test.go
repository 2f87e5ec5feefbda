package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-product-analytics/pkg/utils"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{" 10.5 ", 10.5, true},
		{"-3.2", -3.2, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"10,5", 0, false},
	}
	for _, tt := range tests {
		got, ok := utils.ParseFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestFormatCellRoundTrips(t *testing.T) {
	for _, v := range []float64{0, 1, -2.5, 3.8, 1234.5678, 0.1} {
		got, ok := utils.ParseFloat(utils.FormatCell(v))
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$30.00", utils.FormatMoney(30))
	assert.Equal(t, "$1234.57", utils.FormatMoney(1234.567))
	assert.Equal(t, "$-5.50", utils.FormatMoney(-5.5))
}

func TestCleanHeader(t *testing.T) {
	assert.Equal(t, "price", utils.CleanHeader(`  "Price" `))
	assert.Equal(t, "units_sold", utils.CleanHeader("Units_Sold"))
	assert.Equal(t, "brand", utils.CleanHeader("brand"))
}
