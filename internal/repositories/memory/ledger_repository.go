package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	"github.com/financora/ledger_backend/internal/utils/pagination"
)

type ledgerRepository struct {
	store *Store
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

// saveMovement stages the whole operation, then applies it in one step at
// the end. A failure at any stage, failpoints included, leaves the store
// exactly as it was.
func (r *ledgerRepository) saveMovement(txn domain.Transaction, summary *domain.RecentTransfer) (*domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failpoint(FailBeforeWrite); err != nil {
		return nil, err
	}

	// References are unique across all users, like the database's unique
	// index, so a key collision is a duplicate no matter who issued it.
	if _, exists := s.referenceIndex[txn.ReferenceNumber]; exists {
		return nil, fmt.Errorf("%w: reference number %s", apperrors.ErrDuplicate, txn.ReferenceNumber)
	}

	// Derive balance deltas: the source moves by the signed amount, an
	// internal transfer credits the destination by the magnitude.
	deltas := map[string]decimal.Decimal{txn.AccountID: txn.Amount}
	if txn.ToAccountID != nil {
		deltas[*txn.ToAccountID] = deltas[*txn.ToAccountID].Add(txn.Amount.Neg())
	}

	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	// Re-check ownership, active flags, and sufficiency against current
	// state; the caller's earlier reads may be stale.
	newBalances := make(map[string]decimal.Decimal, len(deltas))
	for _, accountID := range accountIDs {
		rec, ok := s.accounts[accountID]
		if !ok || rec.account.UserID != txn.UserID || !rec.account.IsActive {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
		}
		newBalance := rec.account.Balance.Add(deltas[accountID])
		if newBalance.IsNegative() {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
		}
		newBalances[accountID] = newBalance
	}

	if err := s.failpoint(FailAfterDebit); err != nil {
		return nil, err
	}

	sourceBalance := newBalances[txn.AccountID]
	txn.BalanceAfter = &sourceBalance
	txn.AccountName = s.accounts[txn.AccountID].account.Name

	if err := s.failpoint(FailBeforeCommit); err != nil {
		return nil, err
	}

	// Commit point: every mutation below is infallible.
	for accountID, newBalance := range newBalances {
		rec := s.accounts[accountID]
		rec.account.Balance = newBalance
		rec.account.LastUpdatedAt = txn.LastUpdatedAt
		rec.account.LastUpdatedBy = txn.CreatedBy
		rec.version++
	}

	s.transactions = append(s.transactions, txn)
	idx := len(s.transactions) - 1
	s.transactionsByID[txn.TransactionID] = idx
	s.referenceIndex[txn.ReferenceNumber] = idx

	if summary != nil {
		s.recentTransfers = append(s.recentTransfers, *summary)
		if summary.Recipient != "" {
			byID := s.recentRecipients[summary.UserID]
			if byID == nil {
				byID = make(map[string]*domain.RecentRecipient)
				s.recentRecipients[summary.UserID] = byID
			}
			if existing, ok := byID[summary.Recipient]; ok {
				existing.LastAmount = summary.Amount
				existing.LastUsedAt = summary.CreatedAt
				existing.UseCount++
			} else {
				byID[summary.Recipient] = &domain.RecentRecipient{
					UserID:     summary.UserID,
					Identifier: summary.Recipient,
					LastAmount: summary.Amount,
					LastUsedAt: summary.CreatedAt,
					UseCount:   1,
				}
			}
		}
	}

	saved := txn
	return &saved, nil
}

func (r *ledgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	return r.saveMovement(txn, nil)
}

func (r *ledgerRepository) SaveTransfer(ctx context.Context, txn domain.Transaction, summary domain.RecentTransfer) (*domain.Transaction, error) {
	return r.saveMovement(txn, &summary)
}

func (r *ledgerRepository) FindTransactionByReference(ctx context.Context, userID, referenceNumber string) (*domain.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.referenceIndex[referenceNumber]
	if !ok || s.transactions[idx].UserID != userID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with reference %s not found", referenceNumber))
	}
	txn := s.transactions[idx]
	return &txn, nil
}

func matchesFilter(txn domain.Transaction, filter domain.TransactionFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(txn.Description), needle) &&
			!strings.Contains(strings.ToLower(txn.Category), needle) {
			return false
		}
	}
	if filter.Category != "" && txn.Category != filter.Category {
		return false
	}
	if filter.DateFrom != nil && txn.TransactionDate.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && !txn.TransactionDate.Before(filter.DateTo.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func (r *ledgerRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var afterCreatedAt time.Time
	var afterTxnID string
	paging := false
	if nextToken != nil && *nextToken != "" {
		var err error
		afterCreatedAt, afterTxnID, err = pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		paging = true
	}

	matched := make([]domain.Transaction, 0, limit)
	for _, txn := range s.transactions {
		if txn.UserID != userID || !matchesFilter(txn, filter) {
			continue
		}
		matched = append(matched, txn)
	}

	// Newest-created first, transaction ID as tiebreaker, mirroring the SQL
	// ORDER BY.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].TransactionID > matched[j].TransactionID
	})

	if paging {
		cut := 0
		for cut < len(matched) {
			t := matched[cut]
			if t.CreatedAt.Before(afterCreatedAt) ||
				(t.CreatedAt.Equal(afterCreatedAt) && t.TransactionID < afterTxnID) {
				break
			}
			cut++
		}
		matched = matched[cut:]
	}

	var newNextToken *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[len(matched)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}
	return matched, newNextToken, nil
}

func (r *ledgerRepository) UpdateTransactionStatus(ctx context.Context, userID, transactionID string, next domain.TransactionStatus, updatedBy string, now time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.transactionsByID[transactionID]
	if !ok || s.transactions[idx].UserID != userID {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %s not found", transactionID))
	}
	current := s.transactions[idx].Status
	if !current.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStatusTransition, current, next)
	}
	s.transactions[idx].Status = next
	s.transactions[idx].LastUpdatedAt = now
	s.transactions[idx].LastUpdatedBy = updatedBy
	return nil
}
