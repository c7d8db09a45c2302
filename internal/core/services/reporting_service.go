package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/dto"
	"github.com/financora/ledger_backend/internal/middleware"
	"github.com/financora/ledger_backend/internal/utils"
)

const defaultRecentLimit = 5

type reportingService struct {
	accountRepo      portsrepo.AccountRepository
	recentRepo       portsrepo.RecentActivityRepository
	exchangeRateRepo portsrepo.ExchangeRateRepository

	reportingCurrency string
}

// NewReportingService creates a new reporting service. reportingCurrency is
// the currency every snapshot total is expressed in.
func NewReportingService(
	accountRepo portsrepo.AccountRepository,
	recentRepo portsrepo.RecentActivityRepository,
	exchangeRateRepo portsrepo.ExchangeRateRepository,
	reportingCurrency string,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo:       accountRepo,
		recentRepo:        recentRepo,
		exchangeRateRepo:  exchangeRateRepo,
		reportingCurrency: reportingCurrency,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetBalanceSnapshot sums active balances per currency and converts each sum
// into the reporting currency. The snapshot is derived on demand, never
// stored, so it always reflects the ledger at read time.
func (s *reportingService) GetBalanceSnapshot(ctx context.Context, userID string) (*dto.BalanceSnapshotResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to load accounts for snapshot", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to build balance snapshot: %w", err)
	}

	perCurrency := make(map[string]decimal.Decimal)
	for _, account := range accounts {
		perCurrency[account.CurrencyCode] = perCurrency[account.CurrencyCode].Add(account.Balance)
	}

	currencies := make([]string, 0, len(perCurrency))
	for code := range perCurrency {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)

	snapshot := &dto.BalanceSnapshotResponse{
		ReportingCurrency: s.reportingCurrency,
		Total:             decimal.Zero,
		Balances:          make([]dto.CurrencyBalance, 0, len(currencies)),
	}
	for _, code := range currencies {
		balance := perCurrency[code]
		rate, err := s.exchangeRateRepo.FindRate(ctx, code, s.reportingCurrency)
		if err != nil {
			logger.Error("Missing exchange rate", slog.String("from", code), slog.String("to", s.reportingCurrency))
			return nil, fmt.Errorf("failed to convert %s to %s: %w", code, s.reportingCurrency, err)
		}
		converted := balance.Mul(rate.Rate)
		snapshot.Total = snapshot.Total.Add(converted)
		snapshot.Balances = append(snapshot.Balances, dto.CurrencyBalance{
			CurrencyCode: code,
			Balance:      balance,
			Converted:    converted,
		})
	}
	snapshot.TotalDisplay = utils.FormatWithPrecision(snapshot.Total, utils.MinorUnitPrecision(s.reportingCurrency))
	return snapshot, nil
}

// ListRecentRecipients returns external payees most recently used first.
func (s *reportingService) ListRecentRecipients(ctx context.Context, userID string, limit int) ([]domain.RecentRecipient, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.recentRepo.ListRecentRecipients(ctx, userID, limit)
}

// ListRecentTransfers returns transfer summaries newest first.
func (s *reportingService) ListRecentTransfers(ctx context.Context, userID string, limit int) ([]domain.RecentTransfer, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.recentRepo.ListRecentTransfers(ctx, userID, limit)
}
