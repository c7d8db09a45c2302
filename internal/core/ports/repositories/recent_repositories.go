package repositories

import (
	"context"

	"github.com/financora/ledger_backend/internal/core/domain"
)

// RecentActivityRepository reads the derived summary tables. Writes happen
// inside LedgerRepository.SaveTransfer so they commit with the transfer.
type RecentActivityRepository interface {
	// ListRecentRecipients returns external payees most recently used first.
	ListRecentRecipients(ctx context.Context, userID string, limit int) ([]domain.RecentRecipient, error)

	// ListRecentTransfers returns transfer summaries newest first.
	ListRecentTransfers(ctx context.Context, userID string, limit int) ([]domain.RecentTransfer, error)
}
