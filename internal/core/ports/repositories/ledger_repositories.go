package repositories

import (
	"context"
	"time"

	"github.com/financora/ledger_backend/internal/core/domain"
)

// LedgerRepository is the single write path for money movement. Each Save
// method applies the transaction record, the balance deltas it implies, and
// any derived summary rows as one atomic unit: a reader must never observe a
// partially applied operation, and a failure at any step leaves the store
// untouched.
//
// Both implementations re-check ownership, active flags, and balance
// sufficiency while holding the involved accounts locked, so a concurrent
// writer cannot invalidate the service layer's preconditions.
type LedgerRepository interface {
	// SaveTransaction applies an income or expense entry: inserts the
	// transaction and moves the source balance by the signed amount.
	// The returned copy carries the post-transaction balance snapshot.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// SaveTransfer applies a transfer entry. For an internal transfer
	// (txn.ToAccountID set) it debits the source, credits the destination,
	// and records the recent-transfer summary. For an external payment
	// (summary.Recipient set) it debits the source and records both the
	// recent-transfer and recent-recipient summaries.
	SaveTransfer(ctx context.Context, txn domain.Transaction, summary domain.RecentTransfer) (*domain.Transaction, error)

	// FindTransactionByReference looks up a transaction by its reference
	// number within a user's history. Returns apperrors.ErrNotFound when
	// absent; used for idempotent retries.
	FindTransactionByReference(ctx context.Context, userID, referenceNumber string) (*domain.Transaction, error)

	// ListTransactionsByUser returns transactions newest-created first,
	// joined with the source account's display name, optionally narrowed by
	// the filter, with token-based pagination.
	ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string, filter domain.TransactionFilter) ([]domain.Transaction, *string, error)

	// UpdateTransactionStatus moves a pending transaction to a terminal
	// status. Returns apperrors.ErrInvalidStatusTransition for anything the
	// state machine forbids.
	UpdateTransactionStatus(ctx context.Context, userID, transactionID string, next domain.TransactionStatus, updatedBy string, now time.Time) error
}
