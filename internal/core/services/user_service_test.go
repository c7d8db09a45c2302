package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/financora/ledger_backend/internal/apperrors"
	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/core/services"
	"github.com/financora/ledger_backend/internal/dto"
	"github.com/financora/ledger_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateUserWithAccounts(ctx context.Context, user domain.User, starters []domain.Account) error {
	args := m.Called(ctx, user, starters)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:    "New.User@Example.com",
		Name:     "New User",
		Password: "correct horse battery",
	}

	var capturedUser domain.User
	var capturedStarters []domain.Account
	suite.mockUserRepo.On("CreateUserWithAccounts", ctx,
		mock.AnythingOfType("domain.User"), mock.AnythingOfType("[]domain.Account")).
		Run(func(args mock.Arguments) {
			capturedUser = args.Get(1).(domain.User)
			capturedStarters = args.Get(2).([]domain.Account)
		}).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("new.user@example.com", user.Email)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))

	suite.Equal(user.UserID, capturedUser.UserID)
	suite.Require().Len(capturedStarters, 3)

	primaries := 0
	for _, account := range capturedStarters {
		suite.Equal(user.UserID, account.UserID)
		suite.Equal(services.DefaultCurrencyCode, account.CurrencyCode)
		suite.True(account.IsActive)
		suite.True(account.Balance.IsPositive())
		if account.IsPrimary {
			primaries++
		}
	}
	suite.Equal(1, primaries)
	suite.Equal(domain.Checking, capturedStarters[0].Kind)
	suite.Equal(domain.Savings, capturedStarters[1].Kind)
	suite.Equal(domain.Investment, capturedStarters[2].Kind)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:    "taken@example.com",
		Name:     "Taken",
		Password: "correct horse battery",
	}

	suite.mockUserRepo.On("CreateUserWithAccounts", ctx,
		mock.AnythingOfType("domain.User"), mock.AnythingOfType("[]domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.Register(ctx, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestGetUserByEmail_NormalizesLookup() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "someone@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "someone@example.com").Return(user, nil).Once()

	got, err := suite.service.GetUserByEmail(ctx, "  Someone@Example.COM ")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
