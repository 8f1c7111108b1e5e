package repositories

import (
	"context"

	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ListAccountsFilter narrows a ListAccounts scan. Zero values mean "no filter".
type ListAccountsFilter struct {
	AccountType  domain.AccountType
	CurrencyCode string
}

// AccountRepositoryFacade defines persistence operations for accounts.
// Every lookup is scoped to a tenant; rows belonging to other tenants are
// reported as not found.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	// ListAccounts returns one page ordered by account_code plus the cursor of
	// the next page, or nil when the scan is exhausted.
	ListAccounts(ctx context.Context, tenantID string, filter ListAccountsFilter, limit int, nextToken *string) ([]domain.Account, *string, error)
}

// AccountTxRepositoryFacade extends the account repository with operations
// that must run inside an open database transaction. Used by the posting
// engine's atomic commit.
type AccountTxRepositoryFacade interface {
	AccountRepositoryFacade
	// FindAccountsByIDsForUpdate locks the account rows for the duration of tx.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies net signed balance changes to the locked rows.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error
}
