package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes the three kinds of ledger movement.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// TransactionStatus tracks settlement state. Everything created locally is
// written as Completed; Pending, Failed and Cancelled exist for integration
// with an external payment rail.
type TransactionStatus string

const (
	Pending   TransactionStatus = "pending"
	Completed TransactionStatus = "completed"
	Failed    TransactionStatus = "failed"
	Cancelled TransactionStatus = "cancelled"
)

// CanTransitionTo reports whether a status change from s to next is legal.
// Pending is the only non-terminal state.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s != Pending {
		return false
	}
	switch next {
	case Completed, Failed, Cancelled:
		return true
	}
	return false
}

// Transaction is a single immutable ledger entry. One entry is created per
// logical movement; a transfer carries both account references rather than
// being split into two rows.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`   // Primary Key (UUID)
	ReferenceNumber string            `json:"referenceNumber"` // Globally unique, stable once issued
	UserID          string            `json:"userID"`          // Owning user
	AccountID       string            `json:"accountID"`       // Source account
	ToAccountID     *string           `json:"toAccountID,omitempty"` // Destination, transfers only
	Type            TransactionType   `json:"type"`
	Amount          decimal.Decimal   `json:"amount"` // Signed: income >= 0, expense/transfer <= 0
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	Status          TransactionStatus `json:"status"`
	TransactionDate time.Time         `json:"transactionDate"`
	BalanceAfter    *decimal.Decimal  `json:"balanceAfter,omitempty"` // Source balance after posting
	AccountName     string            `json:"accountName,omitempty"`  // Joined for presentation, not persisted
	AuditFields
}

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint"; an empty filter returns the unfiltered page.
type TransactionFilter struct {
	Search   string     // Case-insensitive match against description or category
	Category string     // Exact category match
	DateFrom *time.Time // Inclusive lower bound on transaction date
	DateTo   *time.Time // Inclusive upper bound on transaction date
}

// IsZero reports whether the filter imposes no constraints.
func (f TransactionFilter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.DateFrom == nil && f.DateTo == nil
}
