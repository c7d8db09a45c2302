package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	"github.com/financora/ledger_backend/internal/models"
	"github.com/financora/ledger_backend/internal/utils/mapping"
	"github.com/financora/ledger_backend/internal/utils/pagination"
)

const pgUniqueViolation = "23505"

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository that owns the atomic write
// path for money movement.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, reference_number, user_id, account_id, to_account_id, transaction_type, amount, description, category, status, transaction_date, balance_after, created_at, created_by, last_updated_at, last_updated_by`

const prefixedTransactionColumns = `t.transaction_id, t.reference_number, t.user_id, t.account_id, t.to_account_id, t.transaction_type, t.amount, t.description, t.category, t.status, t.transaction_date, t.balance_after, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

func scanTransaction(row pgx.Row, withAccountName bool) (models.Transaction, error) {
	var m models.Transaction
	dest := []any{
		&m.TransactionID,
		&m.ReferenceNumber,
		&m.UserID,
		&m.AccountID,
		&m.ToAccountID,
		&m.Type,
		&m.Amount,
		&m.Description,
		&m.Category,
		&m.Status,
		&m.TransactionDate,
		&m.BalanceAfter,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	}
	if withAccountName {
		dest = append(dest, &m.AccountName)
	}
	err := row.Scan(dest...)
	return m, err
}

// balanceDeltas derives the per-account balance changes a transaction
// implies. The source always moves by the signed amount; an internal
// transfer credits the destination by the same magnitude.
func balanceDeltas(txn domain.Transaction) map[string]decimal.Decimal {
	deltas := map[string]decimal.Decimal{
		txn.AccountID: txn.Amount,
	}
	if txn.ToAccountID != nil {
		deltas[*txn.ToAccountID] = deltas[*txn.ToAccountID].Add(txn.Amount.Neg())
	}
	return deltas
}

// lockAccounts acquires FOR UPDATE row locks on the given accounts in
// sorted ID order, so two concurrent transfers touching the same pair can
// never deadlock. Ownership and the active flag are re-checked here, under
// the lock, because the service's earlier reads may be stale by now.
func lockAccounts(ctx context.Context, tx pgx.Tx, userID string, accountIDs []string) (map[string]models.Account, error) {
	sorted := append([]string(nil), accountIDs...)
	sort.Strings(sorted)

	locked := make(map[string]models.Account, len(sorted))
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	for _, accountID := range sorted {
		m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
			}
			return nil, apperrors.NewAppError(500, "failed to lock account "+accountID, err)
		}
		if m.UserID != userID || !m.IsActive {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
		}
		locked[m.AccountID] = m
	}
	return locked, nil
}

// applyDeltas updates locked account balances and rejects any change that
// would take a balance negative.
func applyDeltas(ctx context.Context, tx pgx.Tx, locked map[string]models.Account, deltas map[string]decimal.Decimal, updatedBy string, now time.Time) (map[string]decimal.Decimal, error) {
	newBalances := make(map[string]decimal.Decimal, len(deltas))
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range deltas {
		account := locked[accountID]
		newBalance := account.Balance.Add(delta)
		if newBalance.IsNegative() {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
		}
		newBalances[accountID] = newBalance
		batch.Queue(query, accountID, newBalance, now, updatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return newBalances, nil
}

func insertTransactionInTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.ReferenceNumber,
		m.UserID,
		m.AccountID,
		m.ToAccountID,
		m.Type,
		m.Amount,
		m.Description,
		m.Category,
		m.Status,
		m.TransactionDate,
		m.BalanceAfter,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: reference number %s", apperrors.ErrDuplicate, m.ReferenceNumber)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// saveMovement runs the shared core of SaveTransaction and SaveTransfer:
// lock, re-check, move balances, insert the row, and optionally record the
// summary rows, all inside one DB transaction.
func (r *PgxLedgerRepository) saveMovement(ctx context.Context, txn domain.Transaction, summary *domain.RecentTransfer) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	deltas := balanceDeltas(txn)
	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}

	locked, err := lockAccounts(ctx, tx, txn.UserID, accountIDs)
	if err != nil {
		return nil, err
	}

	newBalances, err := applyDeltas(ctx, tx, locked, deltas, txn.CreatedBy, txn.LastUpdatedAt)
	if err != nil {
		return nil, err
	}

	sourceBalance := newBalances[txn.AccountID]
	txn.BalanceAfter = &sourceBalance

	if err := insertTransactionInTx(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
		return nil, err
	}

	if summary != nil {
		if err := insertRecentTransferInTx(ctx, tx, mapping.ToModelRecentTransfer(*summary)); err != nil {
			return nil, err
		}
		if summary.Recipient != "" {
			if err := upsertRecentRecipientInTx(ctx, tx, summary.UserID, summary.Recipient, summary.Amount, summary.CreatedAt); err != nil {
				return nil, err
			}
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	txn.AccountName = locked[txn.AccountID].Name
	return &txn, nil
}

// SaveTransaction applies an income or expense entry atomically.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	return r.saveMovement(ctx, txn, nil)
}

// SaveTransfer applies a transfer entry plus its summary rows atomically.
func (r *PgxLedgerRepository) SaveTransfer(ctx context.Context, txn domain.Transaction, summary domain.RecentTransfer) (*domain.Transaction, error) {
	return r.saveMovement(ctx, txn, &summary)
}

// FindTransactionByReference looks up one transaction by reference number
// within a user's history.
func (r *PgxLedgerRepository) FindTransactionByReference(ctx context.Context, userID, referenceNumber string) (*domain.Transaction, error) {
	query := `
		SELECT ` + prefixedTransactionColumns + `, a.account_name
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE t.user_id = $1 AND t.reference_number = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, userID, referenceNumber), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with reference %s not found", referenceNumber))
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by reference", err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByUser retrieves a paginated page of the user's history,
// newest-created first, using token-based pagination.
func (r *PgxLedgerRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	query := `
		SELECT ` + prefixedTransactionColumns + `, a.account_name
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE t.user_id = $1
	`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastTxnID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, lastCreatedAt, lastTxnID)
		query += fmt.Sprintf(" AND (t.created_at, t.transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (t.description ILIKE $%d OR t.category ILIKE $%d)", len(args), len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND t.category = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND t.transaction_date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		// Inclusive end of day.
		args = append(args, filter.DateTo.AddDate(0, 0, 1))
		query += fmt.Sprintf(" AND t.transaction_date < $%d", len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows, true)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate transaction rows", err)
	}

	var newNextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		newNextToken = &token
	}
	return mapping.ToDomainTransactionSlice(ms), newNextToken, nil
}

// UpdateTransactionStatus moves a pending transaction to a terminal status,
// enforcing the state machine under a row lock.
func (r *PgxLedgerRepository) UpdateTransactionStatus(ctx context.Context, userID, transactionID string, next domain.TransactionStatus, updatedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var current string
	err = tx.QueryRow(ctx,
		`SELECT status FROM transactions WHERE transaction_id = $1 AND user_id = $2 FOR UPDATE;`,
		transactionID, userID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %s not found", transactionID))
		}
		return apperrors.NewAppError(500, "failed to load transaction status", err)
	}

	if !domain.TransactionStatus(current).CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidStatusTransition, current, next)
	}

	_, err = tx.Exec(ctx,
		`UPDATE transactions SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE transaction_id = $1;`,
		transactionID, string(next), now, updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction status", err)
	}
	return r.Commit(ctx, tx)
}
