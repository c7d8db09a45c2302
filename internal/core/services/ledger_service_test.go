package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/core/services"
	"github.com/financora/ledger_backend/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, userID, accountID string, now time.Time) error {
	args := m.Called(ctx, userID, accountID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransfer(ctx context.Context, txn domain.Transaction, summary domain.RecentTransfer) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionByReference(ctx context.Context, userID, referenceNumber string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) UpdateTransactionStatus(ctx context.Context, userID, transactionID string, next domain.TransactionStatus, updatedBy string, now time.Time) error {
	args := m.Called(ctx, userID, transactionID, next, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.LedgerSvcFacade
	userID          string
	checking        domain.Account
	savings         domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.checking = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Primary Checking",
		Kind:         domain.Checking,
		CurrencyCode: "INR",
		Balance:      decimal.NewFromInt(1000),
		IsPrimary:    true,
		IsActive:     true,
	}
	suite.savings = domain.Account{
		AccountID:    uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Savings Account",
		Kind:         domain.Savings,
		CurrencyCode: "INR",
		Balance:      decimal.NewFromInt(5000),
		IsActive:     true,
	}
}

// --- RecordIncomeOrExpense ---

func (suite *LedgerServiceTestSuite) TestRecordIncome_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:   suite.checking.AccountID,
		Type:        "income",
		Amount:      decimal.NewFromInt(250),
		Description: "Salary",
		Category:    "Income",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == suite.checking.AccountID &&
			txn.Type == domain.Income &&
			txn.Amount.Equal(decimal.NewFromInt(250)) &&
			txn.Status == domain.Completed &&
			txn.ReferenceNumber != ""
	})).Return(&domain.Transaction{TransactionID: uuid.NewString(), Status: domain.Completed}, nil).Once()

	txn, err := suite.service.RecordIncomeOrExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_SignApplied() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:   suite.checking.AccountID,
		Type:        "expense",
		Amount:      decimal.NewFromInt(75),
		Description: "Groceries",
		Category:    "Food",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.Expense && txn.Amount.Equal(decimal.NewFromInt(-75))
	})).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	_, err := suite.service.RecordIncomeOrExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_InsufficientFunds() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:   suite.checking.AccountID,
		Type:        "expense",
		Amount:      decimal.NewFromInt(999999),
		Description: "Too big",
		Category:    "Misc",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()

	_, err := suite.service.RecordIncomeOrExpense(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordIncome_NonPositiveAmount() {
	ctx := context.Background()
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := dto.CreateTransactionRequest{
			AccountID:   suite.checking.AccountID,
			Type:        "income",
			Amount:      amount,
			Description: "Bad amount",
			Category:    "Misc",
		}
		_, err := suite.service.RecordIncomeOrExpense(ctx, suite.userID, req)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	}
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordIncome_ForeignAccountNotFound() {
	ctx := context.Background()
	foreign := suite.checking
	foreign.UserID = uuid.NewString()
	req := dto.CreateTransactionRequest{
		AccountID:   foreign.AccountID,
		Type:        "income",
		Amount:      decimal.NewFromInt(10),
		Description: "x",
		Category:    "x",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(&foreign, nil).Once()

	_, err := suite.service.RecordIncomeOrExpense(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestRecordIncome_IdempotentRetryReturnsExisting() {
	ctx := context.Background()
	key := "TXN_1724912345678_a1b2c3d4e"
	existing := &domain.Transaction{TransactionID: uuid.NewString(), ReferenceNumber: key}
	req := dto.CreateTransactionRequest{
		AccountID:      suite.checking.AccountID,
		Type:           "income",
		Amount:         decimal.NewFromInt(10),
		Description:    "Retry",
		Category:       "Misc",
		IdempotencyKey: key,
	}

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, suite.userID, key).Return(existing, nil).Once()

	txn, err := suite.service.RecordIncomeOrExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(existing.TransactionID, txn.TransactionID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransferInternal_RetryAfterBalanceDrained() {
	ctx := context.Background()
	key := "TXN_1724912345678_d5r6a7i8n"
	// The first application moved the full checking balance, so the
	// sufficiency pre-check would now fail. The retry must still return the
	// winner row, not InsufficientFunds.
	existing := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		ReferenceNumber: key,
		Type:            domain.Transfer,
		Amount:          suite.checking.Balance.Neg(),
	}
	req := dto.InternalTransferRequest{
		FromAccountID:  suite.checking.AccountID,
		ToAccountID:    suite.savings.AccountID,
		Amount:         suite.checking.Balance,
		IdempotencyKey: key,
	}

	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, suite.userID, key).Return(existing, nil).Once()

	txn, err := suite.service.TransferInternal(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(existing.TransactionID, txn.TransactionID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordIncome_DuplicateRaceFallsBackToWinner() {
	ctx := context.Background()
	key := "TXN_1724912345678_z9y8x7w6v"
	winner := &domain.Transaction{TransactionID: uuid.NewString(), ReferenceNumber: key}
	req := dto.CreateTransactionRequest{
		AccountID:      suite.checking.AccountID,
		Type:           "income",
		Amount:         decimal.NewFromInt(10),
		Description:    "Race",
		Category:       "Misc",
		IdempotencyKey: key,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	// First lookup sees nothing, then the insert collides, then the winner is fetched.
	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, suite.userID, key).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil, apperrors.ErrDuplicate).Once()
	suite.mockLedgerRepo.On("FindTransactionByReference", ctx, suite.userID, key).Return(winner, nil).Once()

	txn, err := suite.service.RecordIncomeOrExpense(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(winner.TransactionID, txn.TransactionID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- TransferInternal ---

func (suite *LedgerServiceTestSuite) TestTransferInternal_Success() {
	ctx := context.Background()
	req := dto.InternalTransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   suite.savings.AccountID,
		Amount:        decimal.NewFromInt(300),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.savings.AccountID).Return(&suite.savings, nil).Once()
	suite.mockLedgerRepo.On("SaveTransfer", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Transfer &&
				txn.Amount.Equal(decimal.NewFromInt(-300)) &&
				txn.ToAccountID != nil && *txn.ToAccountID == suite.savings.AccountID &&
				txn.Description == "Transfer from Primary Checking to Savings Account"
		}),
		mock.MatchedBy(func(summary domain.RecentTransfer) bool {
			return summary.Amount.Equal(decimal.NewFromInt(300)) && summary.Recipient == ""
		}),
	).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	_, err := suite.service.TransferInternal(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransferInternal_SameAccount() {
	ctx := context.Background()
	req := dto.InternalTransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   suite.checking.AccountID,
		Amount:        decimal.NewFromInt(10),
	}

	_, err := suite.service.TransferInternal(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrSameAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransferInternal_InsufficientFunds() {
	ctx := context.Background()
	req := dto.InternalTransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   suite.savings.AccountID,
		Amount:        decimal.NewFromInt(100000),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.savings.AccountID).Return(&suite.savings, nil).Once()

	_, err := suite.service.TransferInternal(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransferInternal_InactiveDestination() {
	ctx := context.Background()
	inactive := suite.savings
	inactive.IsActive = false
	req := dto.InternalTransferRequest{
		FromAccountID: suite.checking.AccountID,
		ToAccountID:   inactive.AccountID,
		Amount:        decimal.NewFromInt(10),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, err := suite.service.TransferInternal(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- TransferExternal ---

func (suite *LedgerServiceTestSuite) TestTransferExternal_Success() {
	ctx := context.Background()
	req := dto.ExternalTransferRequest{
		FromAccountID: suite.checking.AccountID,
		Recipient:     "friend@example.com",
		Amount:        decimal.NewFromInt(120),
		Memo:          "Dinner",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	suite.mockLedgerRepo.On("SaveTransfer", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Expense &&
				txn.Amount.Equal(decimal.NewFromInt(-120)) &&
				txn.ToAccountID == nil &&
				txn.Description == "Transfer to friend@example.com - Dinner"
		}),
		mock.MatchedBy(func(summary domain.RecentTransfer) bool {
			return summary.Recipient == "friend@example.com" && summary.ToAccountID == nil
		}),
	).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	_, err := suite.service.TransferExternal(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransferExternal_BlankRecipient() {
	ctx := context.Background()
	req := dto.ExternalTransferRequest{
		FromAccountID: suite.checking.AccountID,
		Recipient:     "   ",
		Amount:        decimal.NewFromInt(10),
	}

	_, err := suite.service.TransferExternal(ctx, suite.userID, req)

	suite.ErrorIs(err, apperrors.ErrInvalidRecipient)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransferExternal_UsesExternalPrefix() {
	ctx := context.Background()
	req := dto.ExternalTransferRequest{
		FromAccountID: suite.checking.AccountID,
		Recipient:     "9876543210",
		Amount:        decimal.NewFromInt(10),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.checking.AccountID).Return(&suite.checking, nil).Once()
	suite.mockLedgerRepo.On("SaveTransfer", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return len(txn.ReferenceNumber) > 4 && txn.ReferenceNumber[:4] == "EXT_"
	}), mock.AnythingOfType("domain.RecentTransfer")).Return(&domain.Transaction{TransactionID: uuid.NewString()}, nil).Once()

	_, err := suite.service.TransferExternal(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- ListTransactions ---

func (suite *LedgerServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()
	returned := []domain.Transaction{{TransactionID: uuid.NewString(), AccountName: "Primary Checking"}}

	suite.mockLedgerRepo.On("ListTransactionsByUser", ctx, suite.userID, 50, (*string)(nil), domain.TransactionFilter{}).
		Return(returned, nil, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Equal("Primary Checking", resp.Transactions[0].AccountName)
	suite.Nil(resp.NextToken)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_RepoError() {
	ctx := context.Background()
	repoErr := errors.New("connection refused")

	suite.mockLedgerRepo.On("ListTransactionsByUser", ctx, suite.userID, 50, (*string)(nil), domain.TransactionFilter{}).
		Return(nil, nil, repoErr).Once()

	_, err := suite.service.ListTransactions(ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

// --- UpdateTransactionStatus ---

func (suite *LedgerServiceTestSuite) TestUpdateTransactionStatus_ForwardsToRepo() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockLedgerRepo.On("UpdateTransactionStatus", ctx, suite.userID, txnID, domain.Completed, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.UpdateTransactionStatus(ctx, suite.userID, txnID, domain.Completed)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateTransactionStatus_InvalidTransition() {
	ctx := context.Background()
	txnID := uuid.NewString()

	suite.mockLedgerRepo.On("UpdateTransactionStatus", ctx, suite.userID, txnID, domain.Pending, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidStatusTransition).Once()

	err := suite.service.UpdateTransactionStatus(ctx, suite.userID, txnID, domain.Pending)

	suite.ErrorIs(err, apperrors.ErrInvalidStatusTransition)
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
