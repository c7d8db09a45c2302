package mapping

import (
	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/financora/ledger_backend/internal/models"
)

// ToDomainRecentRecipient converts a DB row to its domain summary.
func ToDomainRecentRecipient(m models.RecentRecipient) domain.RecentRecipient {
	return domain.RecentRecipient{
		UserID:     m.UserID,
		Identifier: m.Identifier,
		LastAmount: m.LastAmount,
		LastUsedAt: m.LastUsedAt,
		UseCount:   m.UseCount,
	}
}

// ToModelRecentTransfer converts a domain summary to its DB row.
func ToModelRecentTransfer(d domain.RecentTransfer) models.RecentTransfer {
	return models.RecentTransfer{
		RecentTransferID: d.RecentTransferID,
		UserID:           d.UserID,
		FromAccountID:    d.FromAccountID,
		ToAccountID:      d.ToAccountID,
		Recipient:        d.Recipient,
		Amount:           d.Amount,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainRecentTransfer converts a DB row to its domain summary.
func ToDomainRecentTransfer(m models.RecentTransfer) domain.RecentTransfer {
	return domain.RecentTransfer{
		RecentTransferID: m.RecentTransferID,
		UserID:           m.UserID,
		FromAccountID:    m.FromAccountID,
		ToAccountID:      m.ToAccountID,
		Recipient:        m.Recipient,
		Amount:           m.Amount,
		CreatedAt:        m.CreatedAt,
	}
}
