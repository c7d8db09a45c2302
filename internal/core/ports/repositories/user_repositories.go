package repositories

import (
	"context"

	"github.com/financora/ledger_backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// CreateUserWithAccounts inserts the user and their starter accounts in
	// one atomic unit. Returns apperrors.ErrDuplicate when the email is
	// already registered.
	CreateUserWithAccounts(ctx context.Context, user domain.User, starters []domain.Account) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
