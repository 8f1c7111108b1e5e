package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finvera/ledger-service/internal/apperrors"
	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/finvera/ledger-service/internal/dto"
	"github.com/finvera/ledger-service/internal/handlers"
	"github.com/finvera/ledger-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPostingService *MockPostingService
	jwtSecret          string
	tenantID           string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerTestValidators()

	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.mockPostingService = new(MockPostingService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.TenantAuthMiddleware(suite.jwtSecret, false))
	handlers.RegisterRoutes(v1, handlers.Services{
		Account:   new(MockAccountService),
		Posting:   suite.mockPostingService,
		Balance:   new(MockBalanceService),
		Statement: new(MockStatementService),
	})
}

func (suite *LedgerHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTenantToken(suite.jwtSecret, suite.tenantID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) balancedRequest() dto.PostTransactionRequest {
	return dto.PostTransactionRequest{
		Entries: []dto.EntryRequest{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
		EffectiveDate:  "2026-01-10",
		IdempotencyKey: "inv-001",
	}
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_Success() {
	reqBody := suite.balancedRequest()
	committed := &domain.Journal{
		JournalID:      uuid.NewString(),
		TenantID:       suite.tenantID,
		EffectiveDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		CurrencyCode:   "USD",
		IdempotencyKey: "inv-001",
		Amount:         decimal.NewFromInt(100),
		CreatedAt:      time.Now().UTC(),
	}

	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.tenantID, reqBody).Return(committed, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(committed.JournalID, resp.JournalID)
	suite.Equal("2026-01-10", resp.EffectiveDate)
	suite.Equal("100", resp.Amount)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_SingleEntryRejectedByBinding() {
	reqBody := dto.PostTransactionRequest{
		Entries: []dto.EntryRequest{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(100), Direction: domain.Debit},
		},
		IdempotencyKey: "inv-002",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_MissingIdempotencyKey() {
	reqBody := suite.balancedRequest()
	reqBody.IdempotencyKey = ""

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostTransaction")
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_Unbalanced() {
	reqBody := suite.balancedRequest()

	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.tenantID, reqBody).Return(nil, apperrors.ErrValidation).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_UnknownAccount() {
	reqBody := suite.balancedRequest()

	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.tenantID, reqBody).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPostTransaction_Overdraft() {
	reqBody := suite.balancedRequest()

	suite.mockPostingService.On("PostTransaction", mock.Anything, suite.tenantID, reqBody).Return(nil, apperrors.ErrOverdraft).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", reqBody)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetTransaction_Success() {
	journalID := uuid.NewString()
	journal := &domain.Journal{
		JournalID:     journalID,
		TenantID:      suite.tenantID,
		EffectiveDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		CurrencyCode:  "USD",
		Amount:        decimal.NewFromInt(100),
		Entries: []domain.Entry{
			{EntryID: uuid.NewString(), JournalID: journalID, Amount: decimal.NewFromInt(100), Direction: domain.Debit, RunningBalance: decimal.NewFromInt(100)},
			{EntryID: uuid.NewString(), JournalID: journalID, Amount: decimal.NewFromInt(100), Direction: domain.Credit, RunningBalance: decimal.NewFromInt(100)},
		},
	}

	suite.mockPostingService.On("GetTransaction", mock.Anything, suite.tenantID, journalID).Return(journal, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+journalID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 2)
	suite.Equal("100", resp.Entries[0].RunningBalance)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetTransaction_WrongTenantNotFound() {
	journalID := uuid.NewString()

	suite.mockPostingService.On("GetTransaction", mock.Anything, suite.tenantID, journalID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+journalID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_InvalidRange() {
	suite.mockPostingService.On("ListTransactions", mock.Anything, suite.tenantID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.From == "2026-02-01" && p.To == "2026-01-01"
	})).Return(nil, nil, apperrors.ErrValidation).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?from=2026-02-01&to=2026-01-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
