package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentRecipient is a denormalized summary of external payees, keyed by
// user. It exists to speed up recall lists and can be rebuilt from the
// transaction history at any time; it is not authoritative.
type RecentRecipient struct {
	UserID     string          `json:"userID"`
	Identifier string          `json:"identifier"` // Email or phone
	LastAmount decimal.Decimal `json:"lastAmount"`
	LastUsedAt time.Time       `json:"lastUsedAt"`
	UseCount   int             `json:"useCount"`
}

// RecentTransfer is a denormalized summary row recorded after each
// successful transfer, internal or external. Non-authoritative.
type RecentTransfer struct {
	RecentTransferID string          `json:"recentTransferID"` // Primary Key (UUID)
	UserID           string          `json:"userID"`
	FromAccountID    string          `json:"fromAccountID"`
	ToAccountID      *string         `json:"toAccountID,omitempty"` // Internal transfers
	Recipient        string          `json:"recipient,omitempty"`   // External transfers
	Amount           decimal.Decimal `json:"amount"`                // Positive magnitude
	CreatedAt        time.Time       `json:"createdAt"`
}
