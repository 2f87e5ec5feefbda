package utils

import (
	"strconv"
	"strings"
)

// ParseFloat parses a CSV cell as a number. Empty cells and non-numeric
// text report ok=false so the caller can treat the value as missing.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatCell renders a float for CSV export with the shortest
// representation that parses back to the same value.
func FormatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMoney renders an amount as $X.XX for the textual metrics.
func FormatMoney(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// CleanHeader normalizes a CSV header cell: trims whitespace, strips
// stray quotes and lowercases the name.
func CleanHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, `"`, "")
	return strings.ToLower(h)
}
