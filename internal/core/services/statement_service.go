package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finvera/ledger-service/internal/apperrors"
	"github.com/finvera/ledger-service/internal/core/domain"
	portsrepo "github.com/finvera/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/finvera/ledger-service/internal/core/ports/services"
	"github.com/finvera/ledger-service/internal/utils/accounting"
)

// statementService implements the statement generator.
type statementService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewStatementService creates a new statement generator service.
func NewStatementService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.StatementSvcFacade {
	return &statementService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// GetStatement produces the account's ledger extract for [startDate, endDate]:
// opening balance, entry lines with running balances, closing balance.
// An empty window is a valid statement, not an error.
func (s *statementService) GetStatement(ctx context.Context, tenantID, accountID string, startDate, endDate time.Time) (*domain.Statement, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			apperrors.ErrValidation, endDate.Format(time.DateOnly), startDate.Format(time.DateOnly))
	}

	account, err := s.accountSvc.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	// Opening balance: everything strictly before the period.
	openingRaw, err := s.journalRepo.SumEntries(ctx, tenantID, accountID, startDate.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("failed to compute opening balance for account %s: %w", accountID, err)
	}
	openingBalance := signBalance(openingRaw, account.AccountType)

	entries, err := s.journalRepo.FindEntriesInPeriod(ctx, tenantID, accountID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for account %s: %w", accountID, err)
	}

	lines := make([]domain.StatementLine, len(entries))
	runningBalance := openingBalance
	for i, entry := range entries {
		signedAmount, err := accounting.SignedAmount(entry.Amount, entry.Direction, account.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to sign entry %s: %w", entry.EntryID, apperrors.ErrInternal)
		}
		runningBalance = runningBalance.Add(signedAmount)
		lines[i] = domain.StatementLine{
			EntryID:        entry.EntryID,
			JournalID:      entry.JournalID,
			EffectiveDate:  entry.EffectiveDate,
			Amount:         entry.Amount,
			Direction:      entry.Direction,
			SignedAmount:   signedAmount,
			RunningBalance: runningBalance,
			Metadata:       entry.JournalMetadata,
		}
	}

	// With zero lines the closing balance equals the opening balance.
	return &domain.Statement{
		AccountID:      accountID,
		CurrencyCode:   account.CurrencyCode,
		StartDate:      startDate,
		EndDate:        endDate,
		OpeningBalance: openingBalance,
		ClosingBalance: runningBalance,
		Lines:          lines,
	}, nil
}
