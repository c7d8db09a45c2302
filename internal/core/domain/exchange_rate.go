package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate holds the conversion rate between two currencies as of a
// date. Used only by reporting to sum balances in a common currency; the
// ledger itself is currency-agnostic.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	AsOf             time.Time       `json:"asOf"`
}
