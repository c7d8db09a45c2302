package repositories

import (
	"context"
	"time"

	"github.com/financora/ledger_backend/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts. Balance
// mutation is deliberately absent here: balances change only through the
// LedgerRepository's atomic units.
type AccountRepository interface {
	// SaveAccounts inserts one or more accounts in a single atomic unit.
	// Used for starter-set provisioning.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// FindAccountByID retrieves an account by its ID.
	// Returns apperrors.ErrNotFound if it does not exist.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser returns the user's active accounts, primary account
	// first, then creation order.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// DeactivateAccount clears the active flag. Accounts are never hard
	// deleted while transactions reference them.
	DeactivateAccount(ctx context.Context, userID, accountID string, now time.Time) error
}
