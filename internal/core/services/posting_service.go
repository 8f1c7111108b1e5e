package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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
	"github.com/finvera/ledger-service/internal/utils/accounting"
)

// postingService implements the posting engine: it validates and atomically
// commits balanced journals, and owns the idempotency contract.
type postingService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewPostingService creates a new posting engine service.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransaction posts a balanced journal. The operation is idempotent: a
// retry carrying an already-used idempotency key returns the first journal
// unchanged, with no re-validation and no duplicate side effects.
func (s *postingService) PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	idempotencyKey := strings.TrimSpace(req.IdempotencyKey)
	if idempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency key must not be empty", apperrors.ErrValidation)
	}

	// Fast path: the journal may already be committed from an earlier attempt.
	if existing, err := s.findCommitted(ctx, tenantID, idempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		logger.Info("Idempotent replay of posted journal", slog.String("journal_id", existing.JournalID))
		return existing, nil
	}

	effectiveDate, err := parseEffectiveDate(req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	entries := make([]domain.Entry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, entryReq := range req.Entries {
		entries[i] = domain.Entry{
			EntryID:   uuid.NewString(),
			JournalID: journalID,
			AccountID: entryReq.AccountID,
			Amount:    entryReq.Amount,
			Direction: entryReq.Direction,
			CreatedAt: now,
		}
		accountIDs = append(accountIDs, entryReq.AccountID)
	}

	if err := accounting.ValidateBalanced(entries); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Resolve every account within the tenant scope; any miss fails the whole
	// request. No partial posting.
	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()))
		return nil, err
	}

	currencyCode := ""
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if currencyCode == "" {
			currencyCode = acc.CurrencyCode
		} else if acc.CurrencyCode != currencyCode {
			// Cross-currency journals are rejected outright rather than
			// mis-summing amounts in different currencies.
			return nil, fmt.Errorf("%w: journal mixes currencies %s and %s", apperrors.ErrValidation, currencyCode, acc.CurrencyCode)
		}
	}

	// Net signed balance change per account, used both for the overdraft rule
	// and for the balance update inside the commit.
	balanceChanges := make(map[string]decimal.Decimal)
	totalDebits := decimal.Zero
	for _, entry := range entries {
		acc := accountsMap[entry.AccountID]
		signedAmount, err := accounting.SignedAmount(entry.Amount, entry.Direction, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		balanceChanges[entry.AccountID] = balanceChanges[entry.AccountID].Add(signedAmount)
		if entry.Direction == domain.Debit {
			totalDebits = totalDebits.Add(entry.Amount)
		}
	}

	journal := domain.Journal{
		JournalID:      journalID,
		TenantID:       tenantID,
		EffectiveDate:  effectiveDate,
		CurrencyCode:   currencyCode,
		IdempotencyKey: idempotencyKey,
		Metadata:       req.Metadata,
		Amount:         totalDebits,
		CreatedAt:      now,
	}

	err = s.journalRepo.SaveJournal(ctx, journal, entries, balanceChanges)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// A concurrent retry with the same key won the commit race. Exactly one
		// journal exists; return it.
		existing, ferr := s.findCommitted(ctx, tenantID, idempotencyKey)
		if ferr != nil || existing == nil {
			return nil, fmt.Errorf("failed to load journal after idempotency conflict: %w", apperrors.ErrInternal)
		}
		logger.Info("Idempotency conflict resolved to committed journal", slog.String("journal_id", existing.JournalID))
		return existing, nil
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrOverdraft) {
			logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, err
	}

	// Re-read the entries so the response carries the running balances
	// computed during the commit.
	committedEntries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to load entries of committed journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to load entries for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	journal.Entries = committedEntries

	logger.Info("Journal posted",
		slog.String("journal_id", journalID),
		slog.String("amount", totalDebits.String()),
		slog.Int("entry_count", len(entries)))
	return &journal, nil
}

// findCommitted loads a previously committed journal by idempotency key,
// entries included. Returns (nil, nil) when no journal exists for the key.
func (s *postingService) findCommitted(ctx context.Context, tenantID, idempotencyKey string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByIdempotencyKey(ctx, tenantID, idempotencyKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journal.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for journal %s: %w", journal.JournalID, err)
	}
	journal.Entries = entries
	return journal, nil
}

// GetTransaction retrieves a posted journal with its entries.
func (s *postingService) GetTransaction(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	entries, err := s.journalRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for journal %s: %w", journalID, err)
	}
	journal.Entries = entries
	return journal, nil
}

// ListTransactions returns one page of the tenant's journals, optionally
// filtered by account and effective-date range.
func (s *postingService) ListTransactions(ctx context.Context, tenantID string, params dto.ListTransactionsParams) ([]domain.Journal, *string, error) {
	filter := portsrepo.ListJournalsFilter{AccountID: params.AccountID}

	if params.From != "" {
		from, err := time.Parse(time.DateOnly, params.From)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, params.From)
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(time.DateOnly, params.To)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, params.To)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, nil, fmt.Errorf("%w: to date is before from date", apperrors.ErrValidation)
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, tenantID, filter, params.Limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nextToken, nil
}

// parseEffectiveDate parses a YYYY-MM-DD request date, defaulting to today.
func parseEffectiveDate(raw string) (time.Time, error) {
	if raw == "" {
		return today(), nil
	}
	effectiveDate, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid effective date %q, want YYYY-MM-DD", apperrors.ErrValidation, raw)
	}
	return effectiveDate, nil
}
