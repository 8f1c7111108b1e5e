package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finvera/ledger-service/internal/core/domain"
	portsrepo "github.com/finvera/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finvera/ledger-service/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService implements the balance query engine. Balances are pure
// reads over already-committed entries; they never block posting.
type balanceService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewBalanceService creates a new balance query service.
func NewBalanceService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalance computes the account's signed balance as of the given calendar
// date (today when asOf is nil). An account with no entries has balance 0.
func (s *balanceService) GetBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (*domain.Balance, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	asOfDate := today()
	if asOf != nil {
		asOfDate = *asOf
	}

	rawSum, err := s.journalRepo.SumEntries(ctx, tenantID, accountID, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}

	return &domain.Balance{
		AccountID:    accountID,
		CurrencyCode: account.CurrencyCode,
		Amount:       signBalance(rawSum, account.AccountType),
		AsOf:         asOfDate,
	}, nil
}

// GetBalances computes balances for several accounts at once. Ids that do not
// resolve in the tenant scope are skipped, not errored; the result preserves
// the order of the resolvable requested ids.
func (s *balanceService) GetBalances(ctx context.Context, tenantID string, accountIDs []string, asOf *time.Time) ([]domain.Balance, error) {
	requested := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, requested)
	if err != nil {
		return nil, err
	}

	asOfDate := today()
	if asOf != nil {
		asOfDate = *asOf
	}

	resolved := make([]string, 0, len(requested))
	for _, id := range requested {
		if _, ok := accountsMap[id]; ok {
			resolved = append(resolved, id)
		}
	}

	sums, err := s.journalRepo.SumEntriesBatch(ctx, tenantID, resolved, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}

	balances := make([]domain.Balance, 0, len(resolved))
	for _, id := range resolved {
		account := accountsMap[id]
		rawSum, ok := sums[id]
		if !ok {
			rawSum = decimal.Zero
		}
		balances = append(balances, domain.Balance{
			AccountID:    id,
			CurrencyCode: account.CurrencyCode,
			Amount:       signBalance(rawSum, account.AccountType),
			AsOf:         asOfDate,
		})
	}
	return balances, nil
}

// signBalance converts a raw debit-minus-credit sum into the account's
// reported balance: credit-normal account types flip the sign.
func signBalance(rawSum decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	if accountType.NormalSide() == domain.Credit {
		return rawSum.Neg()
	}
	return rawSum
}
