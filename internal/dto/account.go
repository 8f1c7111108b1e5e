package dto

import (
	"time"

	"github.com/finvera/ledger-service/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// Account type, currency and allowNegative are fixed at creation.
type CreateAccountRequest struct {
	AccountCode   string             `json:"accountCode" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode  string             `json:"currencyCode" binding:"required,currency"`
	AllowNegative bool               `json:"allowNegative"`
	Metadata      string             `json:"metadata"` // Optional opaque caller data
}

// AccountResponse defines the data returned for an account. Balances cross
// the boundary as decimal strings, never binary floating point.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	AccountCode   string             `json:"accountCode"`
	AccountType   domain.AccountType `json:"accountType"`
	CurrencyCode  string             `json:"currencyCode"`
	AllowNegative bool               `json:"allowNegative"`
	Metadata      string             `json:"metadata"`
	Balance       string             `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountCode:   acc.AccountCode,
		AccountType:   acc.AccountType,
		CurrencyCode:  acc.CurrencyCode,
		AllowNegative: acc.AllowNegative,
		Metadata:      acc.Metadata,
		Balance:       acc.Balance.String(),
		CreatedAt:     acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
	AccountType  string  `form:"accountType"`
	CurrencyCode string  `form:"currencyCode"`
}

// ListAccountsResponse wraps one page of accounts.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
