package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentRecipient is the recent_recipients table row, upserted on each
// external payment.
type RecentRecipient struct {
	UserID     string          `db:"user_id"`
	Identifier string          `db:"recipient_identifier"`
	LastAmount decimal.Decimal `db:"last_amount"`
	LastUsedAt time.Time       `db:"last_used_at"`
	UseCount   int             `db:"use_count"`
}

// RecentTransfer is the recent_transfers table row.
type RecentTransfer struct {
	RecentTransferID string          `db:"recent_transfer_id"`
	UserID           string          `db:"user_id"`
	FromAccountID    string          `db:"from_account_id"`
	ToAccountID      *string         `db:"to_account_id"`
	Recipient        string          `db:"recipient"`
	Amount           decimal.Decimal `db:"amount"`
	CreatedAt        time.Time       `db:"created_at"`
}
