package repositories

import (
	"context"
	"time"

	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListJournalsFilter narrows a ListJournals scan. Nil/zero values mean "no filter".
type ListJournalsFilter struct {
	AccountID string     // Only journals containing an entry on this account
	From      *time.Time // Inclusive effective-date lower bound
	To        *time.Time // Inclusive effective-date upper bound
}

// JournalRepositoryFacade defines persistence operations for journals and
// their entries. Journals and entries are append-only: the interface carries
// no update or delete operations.
type JournalRepositoryFacade interface {
	// SaveJournal commits the journal, its entries and the account balance
	// updates in a single database transaction. A conflicting
	// (tenant_id, idempotency_key) insert returns apperrors.ErrDuplicate so the
	// caller can fetch and return the already-committed journal.
	SaveJournal(ctx context.Context, journal domain.Journal, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error

	FindJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)
	FindJournalByIdempotencyKey(ctx context.Context, tenantID, idempotencyKey string) (*domain.Journal, error)
	FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.Entry, error)

	// ListJournals returns one page ordered by (effective_date DESC, created_at
	// DESC) plus the cursor of the next page, or nil when exhausted.
	ListJournals(ctx context.Context, tenantID string, filter ListJournalsFilter, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// SumEntries returns the raw debit-minus-credit sum over the account's
	// entries with effective_date <= asOf. The caller applies the account
	// type's normal-side sign.
	SumEntries(ctx context.Context, tenantID, accountID string, asOf time.Time) (decimal.Decimal, error)
	// SumEntriesBatch is SumEntries over several accounts in one query.
	// Accounts with no entries are absent from the result map.
	SumEntriesBatch(ctx context.Context, tenantID string, accountIDs []string, asOf time.Time) (map[string]decimal.Decimal, error)

	// FindEntriesInPeriod returns all entries on the account whose journal
	// effective date falls within [from, to], ordered by (effective_date,
	// created_at, entry_id) ascending. Entries carry their journal's effective
	// date and metadata.
	FindEntriesInPeriod(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.Entry, error)
}
