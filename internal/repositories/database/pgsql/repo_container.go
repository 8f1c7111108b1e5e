package pgsql

import (
	portsrepo "github.com/finvera/ledger-service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryProvider bundles the concrete pgsql repositories.
type RepositoryProvider struct {
	Account portsrepo.AccountTxRepositoryFacade
	Journal portsrepo.JournalRepositoryFacade
}

// NewRepositoryProvider wires the repositories over one connection pool.
// The journal repository reuses the account repository for the in-transaction
// lock and balance-update steps of the posting commit.
func NewRepositoryProvider(pool *pgxpool.Pool) *RepositoryProvider {
	accountRepo := NewAccountRepository(pool)
	return &RepositoryProvider{
		Account: accountRepo,
		Journal: NewJournalRepository(pool, accountRepo),
	}
}
