package memory

import (
	"context"
	"sort"

	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
)

type recentActivityRepository struct {
	store *Store
}

var _ portsrepo.RecentActivityRepository = (*recentActivityRepository)(nil)

func (r *recentActivityRepository) ListRecentRecipients(ctx context.Context, userID string, limit int) ([]domain.RecentRecipient, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.RecentRecipient
	for _, recipient := range s.recentRecipients[userID] {
		out = append(out, *recipient)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUsedAt.Equal(out[j].LastUsedAt) {
			return out[i].LastUsedAt.After(out[j].LastUsedAt)
		}
		return out[i].Identifier < out[j].Identifier
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *recentActivityRepository) ListRecentTransfers(ctx context.Context, userID string, limit int) ([]domain.RecentTransfer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.RecentTransfer
	for _, transfer := range s.recentTransfers {
		if transfer.UserID == userID {
			out = append(out, transfer)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RecentTransferID > out[j].RecentTransferID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
