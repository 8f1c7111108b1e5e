package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the derived, as-of-date balance of one account. It is computed
// from the append-only entry store, never persisted on its own.
type Balance struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	AsOf         time.Time       `json:"asOf"`
}
