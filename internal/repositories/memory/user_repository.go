package memory

import (
	"context"
	"fmt"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
)

type userRepository struct {
	store *Store
}

var _ portsrepo.UserRepository = (*userRepository)(nil)

func (r *userRepository) CreateUserWithAccounts(ctx context.Context, user domain.User, starters []domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[user.Email]; exists {
		return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
	}
	for _, account := range starters {
		if _, exists := s.accounts[account.AccountID]; exists {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
		}
	}

	s.users[user.UserID] = user
	s.usersByEmail[user.Email] = user.UserID
	for _, account := range starters {
		s.accounts[account.AccountID] = &accountRecord{account: account}
	}
	return nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s not found", userID))
	}
	return &user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.usersByEmail[email]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	user := s.users[userID]
	return &user, nil
}
