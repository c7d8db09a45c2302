package services

import (
	"context"

	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/financora/ledger_backend/internal/dto"
)

// AccountSvcFacade exposes account reads and lifecycle operations.
type AccountSvcFacade interface {
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, userID, accountID string) error
}

// LedgerSvcFacade exposes every money-moving operation and the history read.
type LedgerSvcFacade interface {
	RecordIncomeOrExpense(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	TransferInternal(ctx context.Context, userID string, req dto.InternalTransferRequest) (*domain.Transaction, error)
	TransferExternal(ctx context.Context, userID string, req dto.ExternalTransferRequest) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	UpdateTransactionStatus(ctx context.Context, userID, transactionID string, next domain.TransactionStatus) error
}

// ReportingSvcFacade exposes derived, read-only views of the ledger.
type ReportingSvcFacade interface {
	GetBalanceSnapshot(ctx context.Context, userID string) (*dto.BalanceSnapshotResponse, error)
	ListRecentRecipients(ctx context.Context, userID string, limit int) ([]domain.RecentRecipient, error)
	ListRecentTransfers(ctx context.Context, userID string, limit int) ([]domain.RecentTransfer, error)
}

// UserSvcFacade exposes registration and user lookup.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
	User      UserSvcFacade
}
