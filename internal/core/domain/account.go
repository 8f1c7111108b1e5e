package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the five recognised types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalSide returns the direction that increases the balance of this account
// type: debit for asset/expense, credit for liability/equity/revenue.
func (t AccountType) NormalSide() Direction {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// Account represents a financial account within the core domain.
// Account type, currency and the allow-negative flag are fixed at creation.
type Account struct {
	AccountID     string          `json:"accountID"`   // Primary Key (UUID)
	TenantID      string          `json:"tenantID"`    // Isolation boundary (Not Null)
	AccountCode   string          `json:"accountCode"` // Unique within (tenant_id)
	AccountType   AccountType     `json:"accountType"`
	CurrencyCode  string          `json:"currencyCode"`  // ISO 4217, 3 letters
	AllowNegative bool            `json:"allowNegative"` // May the balance go below zero
	Metadata      string          `json:"metadata"`      // Opaque caller data
	Balance       decimal.Decimal `json:"balance"`       // Live balance, maintained by the posting engine
	CreatedAt     time.Time       `json:"createdAt"`
}
