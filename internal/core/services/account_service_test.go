package services_test

import (
	"context"
	"testing"

	"github.com/finvera/ledger-service/internal/apperrors"
	"github.com/finvera/ledger-service/internal/core/domain"
	portssvc "github.com/finvera/ledger-service/internal/core/ports/services"
	"github.com/finvera/ledger-service/internal/core/services"
	"github.com/finvera/ledger-service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	tenantID        string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.tenantID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "CASH",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.tenantID, account.TenantID)
	suite.Equal("CASH", account.AccountCode)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal("USD", account.CurrencyCode)
	suite.False(account.AllowNegative)
	suite.True(account.Balance.IsZero())

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_TrimsAccountCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "  AR-001  ",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountCode == "AR-001"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().NoError(err)
	suite.Equal("AR-001", account.AccountCode)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_EmptyCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "   ",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "CASH",
		AccountType:  domain.AccountType("SAVINGS"),
		CurrencyCode: "USD",
	}

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidCurrency() {
	ctx := context.Background()
	for _, code := range []string{"us", "USDX", "usd", ""} {
		req := dto.CreateAccountRequest{
			AccountCode:  "CASH",
			AccountType:  domain.Asset,
			CurrencyCode: code,
		}
		account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)
		suite.Require().Error(err, "currency %q should be rejected", code)
		suite.Nil(account)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode:  "CASH",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.tenantID, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidTypeFilter() {
	ctx := context.Background()
	params := dto.ListAccountsParams{Limit: 20, AccountType: "BANK"}

	accounts, nextToken, err := suite.service.ListAccounts(ctx, suite.tenantID, params)

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.Nil(nextToken)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListAccounts")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
