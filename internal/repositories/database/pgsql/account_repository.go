package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	"github.com/financora/ledger_backend/internal/models"
	"github.com/financora/ledger_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, account_name, account_type, account_number, currency_code, balance, is_primary, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.Kind,
		&m.AccountNumber,
		&m.CurrencyCode,
		&m.Balance,
		&m.IsPrimary,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccounts inserts accounts in one DB transaction. Used by starter-set
// provisioning, so either the whole set exists or none of it does.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertAccountsInTx(ctx, tx, accounts); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// insertAccountsInTx writes account rows inside an existing transaction.
// Shared with user registration, which provisions accounts alongside the
// user row.
func insertAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, account := range accounts {
		m := mapping.ToModelAccount(account)
		batch.Queue(query,
			m.AccountID,
			m.UserID,
			m.Name,
			m.Kind,
			m.AccountNumber,
			m.CurrencyCode,
			m.Balance,
			m.IsPrimary,
			m.IsActive,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert accounts", err)
	}
	return nil
}

// FindAccountByID retrieves a single account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccountsByUser returns the user's active accounts, primary first,
// then oldest first.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY is_primary DESC, created_at ASC, account_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// DeactivateAccount clears the active flag on one of the user's accounts.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, userID, accountID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $2
		WHERE account_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, userID, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
	}
	return nil
}
