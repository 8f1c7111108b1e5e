package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the database row representation of an account.
type Account struct {
	AccountID     string          `db:"account_id"`
	TenantID      string          `db:"tenant_id"`
	AccountCode   string          `db:"account_code"`
	AccountType   AccountType     `db:"account_type"`
	CurrencyCode  string          `db:"currency_code"`
	AllowNegative bool            `db:"allow_negative"`
	Metadata      string          `db:"metadata"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
}
