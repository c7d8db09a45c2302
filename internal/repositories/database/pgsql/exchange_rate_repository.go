package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rates.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

// FindRate returns the latest known rate between two currencies.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	if fromCurrencyCode == toCurrencyCode {
		return &domain.ExchangeRate{
			FromCurrencyCode: fromCurrencyCode,
			ToCurrencyCode:   toCurrencyCode,
			Rate:             decimal.NewFromInt(1),
			AsOf:             time.Now().UTC(),
		}, nil
	}

	query := `
		SELECT from_currency_code, to_currency_code, rate, as_of
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY as_of DESC
		LIMIT 1;
	`
	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode).
		Scan(&rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &rate.AsOf)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no exchange rate from %s to %s", fromCurrencyCode, toCurrencyCode))
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	return &rate, nil
}
