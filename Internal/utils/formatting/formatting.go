package formatting

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Separator returns a line separator of given width
func Separator(width int) string {
	return strings.Repeat("=", width)
}

// Price renders a price with exactly one decimal place, e.g. 110 -> "110.0".
func Price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

// Level renders a raw input level without trailing zeros, e.g. 4158.92 -> "4158.92".
func Level(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// PriceDecimal is Price as a decimal, for YAML and database values.
func PriceDecimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(1)
}

func Strength(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "/10"
}
