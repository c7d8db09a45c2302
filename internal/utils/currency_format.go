package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision renders an amount rounded to the given number of
// decimal places, e.g. 12.3456 with precision 2 -> "12.35".
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).StringFixed(int32(precision))
}

// MinorUnitPrecision returns the decimal places for a currency's minor
// unit. Every currency the starter set provisions uses two; zero-decimal
// currencies are listed explicitly.
func MinorUnitPrecision(currencyCode string) int {
	switch currencyCode {
	case "JPY", "KRW", "VND":
		return 0
	default:
		return 2
	}
}
