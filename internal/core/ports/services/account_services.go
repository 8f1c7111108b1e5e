package services

import (
	"context"

	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/finvera/ledger-service/internal/dto"
)

// AccountSvcFacade defines the account registry operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	// GetAccountsByIDs resolves several accounts within the tenant scope.
	// Unresolvable ids are simply absent from the result map.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, *string, error)
}
