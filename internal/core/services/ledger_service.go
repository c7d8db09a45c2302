package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/dto"
	"github.com/financora/ledger_backend/internal/middleware"
	"github.com/financora/ledger_backend/internal/utils"
)

const defaultTransactionLimit = 50

// ledgerService is the single authority for reading account state and
// applying money movement. All validation happens before any mutation; the
// repository applies each mutation as one atomic unit.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ownedActiveAccount fetches an account and verifies ownership and the
// active flag. A foreign or inactive account is reported as not found so
// existence is not leaked across users.
func (s *ledgerService) ownedActiveAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID || !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

// resolveReference returns the reference number for a new transaction and,
// when the caller supplied an idempotency key that was already used, the
// previously created transaction.
func (s *ledgerService) resolveReference(ctx context.Context, userID, idempotencyKey, prefix string) (string, *domain.Transaction, error) {
	if idempotencyKey != "" {
		existing, err := s.ledgerRepo.FindTransactionByReference(ctx, userID, idempotencyKey)
		if err == nil {
			return idempotencyKey, existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
		return idempotencyKey, nil, nil
	}

	ref, err := utils.GenerateReferenceNumber(prefix)
	if err != nil {
		return "", nil, err
	}
	return ref, nil, nil
}

// RecordIncomeOrExpense creates one completed transaction and moves the
// account balance by the signed amount, atomically.
func (s *ledgerService) RecordIncomeOrExpense(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	// The retry lookup runs before the account checks: the first application
	// may have changed the very balance the checks would read.
	reference, existing, err := s.resolveReference(ctx, userID, req.IdempotencyKey, utils.RefPrefixTransaction)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("Idempotent retry, returning existing transaction", slog.String("reference_number", reference))
		return existing, nil
	}

	account, err := s.ownedActiveAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	txnType := domain.TransactionType(req.Type)
	signedAmount := req.Amount
	if txnType == domain.Expense {
		signedAmount = signedAmount.Neg()
		if !account.CanCover(req.Amount) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, account.AccountID)
		}
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		ReferenceNumber: reference,
		UserID:          userID,
		AccountID:       account.AccountID,
		Type:            txnType,
		Amount:          signedAmount,
		Description:     req.Description,
		Category:        req.Category,
		Status:          domain.Completed,
		TransactionDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race against a retry of the same key; the winner's row
			// is the result.
			return s.ledgerRepo.FindTransactionByReference(ctx, userID, reference)
		}
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("type", string(saved.Type)),
		slog.String("account_id", account.AccountID))
	return saved, nil
}

// TransferInternal moves funds between two accounts of the same user. The
// transaction insert, source debit, destination credit, and recent-transfer
// summary commit as one unit.
func (s *ledgerService) TransferInternal(ctx context.Context, userID string, req dto.InternalTransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromAccountID == req.ToAccountID {
		return nil, apperrors.ErrSameAccount
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	reference, existing, err := s.resolveReference(ctx, userID, req.IdempotencyKey, utils.RefPrefixTransaction)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("Idempotent retry, returning existing transfer", slog.String("reference_number", reference))
		return existing, nil
	}

	from, err := s.ownedActiveAccount(ctx, userID, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.ownedActiveAccount(ctx, userID, req.ToAccountID)
	if err != nil {
		return nil, err
	}
	if !from.CanCover(req.Amount) {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, from.AccountID)
	}

	description := req.Memo
	if description == "" {
		description = fmt.Sprintf("Transfer from %s to %s", from.Name, to.Name)
	}

	now := time.Now().UTC()
	toAccountID := to.AccountID
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		ReferenceNumber: reference,
		UserID:          userID,
		AccountID:       from.AccountID,
		ToAccountID:     &toAccountID,
		Type:            domain.Transfer,
		Amount:          req.Amount.Neg(), // Ledger effect on the source account
		Description:     description,
		Category:        "Transfer",
		Status:          domain.Completed,
		TransactionDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	summary := domain.RecentTransfer{
		RecentTransferID: uuid.NewString(),
		UserID:           userID,
		FromAccountID:    from.AccountID,
		ToAccountID:      &toAccountID,
		Amount:           req.Amount,
		CreatedAt:        now,
	}

	saved, err := s.ledgerRepo.SaveTransfer(ctx, txn, summary)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.ledgerRepo.FindTransactionByReference(ctx, userID, reference)
		}
		logger.Error("Failed to save internal transfer", slog.String("error", err.Error()),
			slog.String("from_account_id", from.AccountID), slog.String("to_account_id", to.AccountID))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Internal transfer completed",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("from_account_id", from.AccountID),
		slog.String("to_account_id", to.AccountID))
	return saved, nil
}

// TransferExternal pays a recipient identified by email or phone. The
// transaction insert, source debit, and both summary rows commit as one
// unit. Deliverability of the identifier is the payment rail's concern.
func (s *ledgerService) TransferExternal(ctx context.Context, userID string, req dto.ExternalTransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" {
		return nil, apperrors.ErrInvalidRecipient
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	reference, existing, err := s.resolveReference(ctx, userID, req.IdempotencyKey, utils.RefPrefixExternal)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("Idempotent retry, returning existing payment", slog.String("reference_number", reference))
		return existing, nil
	}

	from, err := s.ownedActiveAccount(ctx, userID, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	if !from.CanCover(req.Amount) {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, from.AccountID)
	}

	description := fmt.Sprintf("Transfer to %s", recipient)
	if req.Memo != "" {
		description = fmt.Sprintf("%s - %s", description, req.Memo)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		ReferenceNumber: reference,
		UserID:          userID,
		AccountID:       from.AccountID,
		Type:            domain.Expense,
		Amount:          req.Amount.Neg(),
		Description:     description,
		Category:        "Transfer",
		Status:          domain.Completed,
		TransactionDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	summary := domain.RecentTransfer{
		RecentTransferID: uuid.NewString(),
		UserID:           userID,
		FromAccountID:    from.AccountID,
		Recipient:        recipient,
		Amount:           req.Amount,
		CreatedAt:        now,
	}

	saved, err := s.ledgerRepo.SaveTransfer(ctx, txn, summary)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.ledgerRepo.FindTransactionByReference(ctx, userID, reference)
		}
		logger.Error("Failed to save external payment", slog.String("error", err.Error()),
			slog.String("from_account_id", from.AccountID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("External payment completed",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("from_account_id", from.AccountID))
	return saved, nil
}

// ListTransactions returns the user's history, newest-created first, each
// entry joined with its source account's display name.
func (s *ledgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	transactions, nextToken, err := s.ledgerRepo.ListTransactionsByUser(ctx, userID, limit, params.NextToken, params.Filter())
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	logger.Debug("Transactions listed", slog.Int("count", len(transactions)))
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// UpdateTransactionStatus moves a pending transaction to a terminal status.
func (s *ledgerService) UpdateTransactionStatus(ctx context.Context, userID, transactionID string, next domain.TransactionStatus) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.ledgerRepo.UpdateTransactionStatus(ctx, userID, transactionID, next, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidStatusTransition) {
			logger.Error("Failed to update transaction status", slog.String("error", err.Error()),
				slog.String("transaction_id", transactionID))
		}
		return err
	}

	logger.Info("Transaction status updated",
		slog.String("transaction_id", transactionID), slog.String("status", string(next)))
	return nil
}
