package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
)

type exchangeRateRepository struct {
	store *Store
}

var _ portsrepo.ExchangeRateRepository = (*exchangeRateRepository)(nil)

func (r *exchangeRateRepository) FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	if fromCurrencyCode == toCurrencyCode {
		return &domain.ExchangeRate{
			FromCurrencyCode: fromCurrencyCode,
			ToCurrencyCode:   toCurrencyCode,
			Rate:             decimal.NewFromInt(1),
			AsOf:             time.Now().UTC(),
		}, nil
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rate, ok := s.rates[fromCurrencyCode+"->"+toCurrencyCode]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no exchange rate from %s to %s", fromCurrencyCode, toCurrencyCode))
	}
	return &rate, nil
}
