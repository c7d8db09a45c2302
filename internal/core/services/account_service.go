package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListAccounts returns the user's active accounts, primary first.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountByID returns one of the user's accounts. A foreign account is
// reported as not found.
func (s *accountService) GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// DeactivateAccount hides an account from listings and blocks further
// movement through it. History referencing the account is preserved.
func (s *accountService) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if account.IsPrimary {
		return fmt.Errorf("%w: the primary account cannot be deactivated", apperrors.ErrValidation)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, userID, accountID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()),
			slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
