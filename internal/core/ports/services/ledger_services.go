package services

import (
	"context"
	"time"

	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/finvera/ledger-service/internal/dto"
)

// PostingSvcFacade defines the posting engine operations.
type PostingSvcFacade interface {
	// PostTransaction validates and atomically commits a balanced journal.
	// Retries with the same idempotency key return the first journal unchanged.
	PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest) (*domain.Journal, error)
	GetTransaction(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)
	ListTransactions(ctx context.Context, tenantID string, params dto.ListTransactionsParams) ([]domain.Journal, *string, error)
}

// BalanceSvcFacade defines the balance query engine operations.
type BalanceSvcFacade interface {
	GetBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (*domain.Balance, error)
	// GetBalances silently skips account ids that do not resolve in tenant scope.
	GetBalances(ctx context.Context, tenantID string, accountIDs []string, asOf *time.Time) ([]domain.Balance, error)
}

// StatementSvcFacade defines the statement generator operations.
type StatementSvcFacade interface {
	GetStatement(ctx context.Context, tenantID, accountID string, startDate, endDate time.Time) (*domain.Statement, error)
}
