package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	"github.com/financora/ledger_backend/internal/models"
	"github.com/financora/ledger_backend/internal/utils/mapping"
)

type PgxRecentActivityRepository struct {
	BaseRepository
}

// newPgxRecentActivityRepository creates the read side of the summary
// tables. Writes live in the ledger repository so they commit with the
// transfer that caused them.
func newPgxRecentActivityRepository(pool *pgxpool.Pool) portsrepo.RecentActivityRepository {
	return &PgxRecentActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RecentActivityRepository = (*PgxRecentActivityRepository)(nil)

// insertRecentTransferInTx records one transfer summary row inside the
// transfer's DB transaction.
func insertRecentTransferInTx(ctx context.Context, tx pgx.Tx, m models.RecentTransfer) error {
	query := `
		INSERT INTO recent_transfers (recent_transfer_id, user_id, from_account_id, to_account_id, recipient, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		m.RecentTransferID,
		m.UserID,
		m.FromAccountID,
		m.ToAccountID,
		m.Recipient,
		m.Amount,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert recent transfer", err)
	}
	return nil
}

// upsertRecentRecipientInTx bumps the payee summary inside the payment's DB
// transaction: first use inserts, every later use refreshes the amount and
// timestamp and increments the counter.
func upsertRecentRecipientInTx(ctx context.Context, tx pgx.Tx, userID, identifier string, amount decimal.Decimal, usedAt time.Time) error {
	query := `
		INSERT INTO recent_recipients (user_id, recipient_identifier, last_amount, last_used_at, use_count)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (user_id, recipient_identifier)
		DO UPDATE SET last_amount = EXCLUDED.last_amount, last_used_at = EXCLUDED.last_used_at, use_count = recent_recipients.use_count + 1;
	`
	_, err := tx.Exec(ctx, query, userID, identifier, amount, usedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert recent recipient", err)
	}
	return nil
}

// ListRecentRecipients returns external payees, most recently used first.
func (r *PgxRecentActivityRepository) ListRecentRecipients(ctx context.Context, userID string, limit int) ([]domain.RecentRecipient, error) {
	query := `
		SELECT user_id, recipient_identifier, last_amount, last_used_at, use_count
		FROM recent_recipients
		WHERE user_id = $1
		ORDER BY last_used_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list recent recipients", err)
	}
	defer rows.Close()

	var out []domain.RecentRecipient
	for rows.Next() {
		var m models.RecentRecipient
		if err := rows.Scan(&m.UserID, &m.Identifier, &m.LastAmount, &m.LastUsedAt, &m.UseCount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recent recipient row", err)
		}
		out = append(out, mapping.ToDomainRecentRecipient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate recent recipient rows", err)
	}
	return out, nil
}

// ListRecentTransfers returns transfer summaries, newest first.
func (r *PgxRecentActivityRepository) ListRecentTransfers(ctx context.Context, userID string, limit int) ([]domain.RecentTransfer, error) {
	query := `
		SELECT recent_transfer_id, user_id, from_account_id, to_account_id, recipient, amount, created_at
		FROM recent_transfers
		WHERE user_id = $1
		ORDER BY created_at DESC, recent_transfer_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list recent transfers", err)
	}
	defer rows.Close()

	var out []domain.RecentTransfer
	for rows.Next() {
		var m models.RecentTransfer
		if err := rows.Scan(&m.RecentTransferID, &m.UserID, &m.FromAccountID, &m.ToAccountID, &m.Recipient, &m.Amount, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recent transfer row", err)
		}
		out = append(out, mapping.ToDomainRecentTransfer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate recent transfer rows", err)
	}
	return out, nil
}
