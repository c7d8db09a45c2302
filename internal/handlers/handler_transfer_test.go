package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/dto"
	"github.com/financora/ledger_backend/internal/handlers"
	"github.com/financora/ledger_backend/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) RecordIncomeOrExpense(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) TransferInternal(ctx context.Context, userID string, req dto.InternalTransferRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) TransferExternal(ctx context.Context, userID string, req dto.ExternalTransferRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockLedgerService) UpdateTransactionStatus(ctx context.Context, userID, transactionID string, next domain.TransactionStatus) error {
	args := m.Called(ctx, userID, transactionID, next)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, userID, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) GetBalanceSnapshot(ctx context.Context, userID string) (*dto.BalanceSnapshotResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceSnapshotResponse), args.Error(1)
}

func (m *MockReportingService) ListRecentRecipients(ctx context.Context, userID string, limit int) ([]domain.RecentRecipient, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentRecipient), args.Error(1)
}

func (m *MockReportingService) ListRecentTransfers(ctx context.Context, userID string, limit int) ([]domain.RecentTransfer, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentTransfer), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---
type TransferHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	jwtSecret         string
	mockLedgerService *MockLedgerService
	userID            string
}

func (suite *TransferHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *TransferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockLedgerService = new(MockLedgerService)
	services := &portssvc.ServiceContainer{
		Account:   new(MockAccountService),
		Ledger:    suite.mockLedgerService,
		Reporting: new(MockReportingService),
		User:      new(MockUserService),
	}
	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *TransferHandlerTestSuite) doRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransferHandlerTestSuite) TestTransferInternal_Success() {
	req := dto.InternalTransferRequest{
		FromAccountID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		Amount:        decimal.NewFromInt(300),
	}
	created := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		ReferenceNumber: "TXN_1724912345678_a1b2c3d4e",
		Type:            domain.Transfer,
		Amount:          decimal.NewFromInt(-300),
		Status:          domain.Completed,
	}

	suite.mockLedgerService.On("TransferInternal", mock.Anything, suite.userID, req).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers", req, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.TransactionID, resp.TransactionID)
	suite.Equal("transfer", resp.Type)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestTransferInternal_InsufficientFunds() {
	req := dto.InternalTransferRequest{
		FromAccountID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		Amount:        decimal.NewFromInt(999999),
	}

	suite.mockLedgerService.On("TransferInternal", mock.Anything, suite.userID, req).
		Return(nil, fmt.Errorf("%w: account", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers", req, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *TransferHandlerTestSuite) TestTransferInternal_SameAccountRejected() {
	accountID := uuid.NewString()
	req := dto.InternalTransferRequest{
		FromAccountID: accountID,
		ToAccountID:   accountID,
		Amount:        decimal.NewFromInt(10),
	}

	suite.mockLedgerService.On("TransferInternal", mock.Anything, suite.userID, req).
		Return(nil, apperrors.ErrSameAccount).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers", req, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransferHandlerTestSuite) TestTransferInternal_MissingToken() {
	req := dto.InternalTransferRequest{
		FromAccountID: uuid.NewString(),
		ToAccountID:   uuid.NewString(),
		Amount:        decimal.NewFromInt(10),
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers", req, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "TransferInternal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferHandlerTestSuite) TestTransferExternal_MalformedBody() {
	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/external",
		map[string]any{"fromAccountID": uuid.NewString()}, // No recipient or amount
		suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "TransferExternal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferHandlerTestSuite) TestCreateTransaction_Success() {
	req := dto.CreateTransactionRequest{
		AccountID:   uuid.NewString(),
		Type:        "expense",
		Amount:      decimal.NewFromInt(250),
		Description: "Groceries",
		Category:    "Food",
	}
	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(-250),
		Status:        domain.Completed,
	}

	suite.mockLedgerService.On("RecordIncomeOrExpense", mock.Anything, suite.userID, req).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", req, suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestCreateTransaction_BadType() {
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions",
		map[string]any{
			"accountID":   uuid.NewString(),
			"type":        "withdrawal", // Not a valid type
			"amount":      "10",
			"description": "x",
			"category":    "x",
		},
		suite.generateTestToken(suite.userID))

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---
func TestTransferHandler(t *testing.T) {
	suite.Run(t, new(TransferHandlerTestSuite))
}
