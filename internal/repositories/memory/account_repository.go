package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
)

type accountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepository = (*accountRepository)(nil)

func (r *accountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range accounts {
		if _, exists := s.accounts[account.AccountID]; exists {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
		}
	}
	for _, account := range accounts {
		s.accounts[account.AccountID] = &accountRecord{account: account}
	}
	return nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
	}
	account := rec.account
	return &account, nil
}

func (r *accountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Account
	for _, rec := range s.accounts {
		if rec.account.UserID == userID && rec.account.IsActive {
			out = append(out, rec.account)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (r *accountRepository) DeactivateAccount(ctx context.Context, userID, accountID string, now time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.accounts[accountID]
	if !ok || rec.account.UserID != userID || !rec.account.IsActive {
		return apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
	}
	rec.account.IsActive = false
	rec.account.LastUpdatedAt = now
	rec.account.LastUpdatedBy = userID
	return nil
}
