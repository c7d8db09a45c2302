package repositories

import (
	"context"

	"github.com/financora/ledger_backend/internal/core/domain"
)

// ExchangeRateRepository serves conversion rates for reporting.
type ExchangeRateRepository interface {
	// FindRate returns the rate from one currency to another. A same-currency
	// lookup returns a rate of 1 without touching the store. Returns
	// apperrors.ErrNotFound when no rate is known.
	FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)
}
