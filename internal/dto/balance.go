package dto

import (
	"time"

	"github.com/finvera/ledger-service/internal/core/domain"
)

// GetBalancesRequest asks for the balances of several accounts at once.
// AsOf is a YYYY-MM-DD calendar date; empty means today. Unresolvable
// account ids are skipped, not errored.
type GetBalancesRequest struct {
	AccountIDs []string `json:"accountIDs" binding:"required,min=1"`
	AsOf       string   `json:"asOf"`
}

// BalanceResponse reports one account's signed balance as a decimal string.
type BalanceResponse struct {
	AccountID    string `json:"accountID"`
	Balance      string `json:"balance"`
	CurrencyCode string `json:"currencyCode"`
	AsOf         string `json:"asOf"` // YYYY-MM-DD
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		AccountID:    b.AccountID,
		Balance:      b.Amount.String(),
		CurrencyCode: b.CurrencyCode,
		AsOf:         b.AsOf.Format(time.DateOnly),
	}
}
