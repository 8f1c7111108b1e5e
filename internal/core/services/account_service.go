package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvera/ledger-service/internal/apperrors"
	"github.com/finvera/ledger-service/internal/core/domain"
	portsrepo "github.com/finvera/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finvera/ledger-service/internal/core/ports/services"
	"github.com/finvera/ledger-service/internal/dto"
	"github.com/finvera/ledger-service/internal/middleware"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// accountService implements the account registry.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account with a zero balance. Account type,
// currency and allowNegative are fixed here and never mutated afterwards.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountCode := strings.TrimSpace(req.AccountCode)
	if accountCode == "" {
		return nil, fmt.Errorf("%w: account code must not be empty", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if !currencyCodePattern.MatchString(req.CurrencyCode) {
		return nil, fmt.Errorf("%w: currency code must be 3 uppercase letters, got %q", apperrors.ErrValidation, req.CurrencyCode)
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      tenantID,
		AccountCode:   accountCode,
		AccountType:   req.AccountType,
		CurrencyCode:  req.CurrencyCode,
		AllowNegative: req.AllowNegative,
		Metadata:      req.Metadata,
		Balance:       decimal.Zero,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		}
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_code", accountCode))
	return &account, nil
}

// GetAccountByID resolves an account within the tenant scope. Missing and
// cross-tenant accounts are indistinguishable to the caller.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs resolves several accounts within the tenant scope.
// Unresolvable ids are absent from the result map; the caller decides whether
// that is fatal.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts returns one page of the tenant's accounts ordered by account code.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, *string, error) {
	filter := portsrepo.ListAccountsFilter{
		CurrencyCode: params.CurrencyCode,
	}
	if params.AccountType != "" {
		accountType := domain.AccountType(params.AccountType)
		if !accountType.IsValid() {
			return nil, nil, fmt.Errorf("%w: unknown account type filter %q", apperrors.ErrValidation, params.AccountType)
		}
		filter.AccountType = accountType
	}

	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, tenantID, filter, params.Limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nextToken, nil
}
