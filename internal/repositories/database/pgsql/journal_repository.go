package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finvera/ledger-service/internal/apperrors"
	"github.com/finvera/ledger-service/internal/core/domain"
	portsrepo "github.com/finvera/ledger-service/internal/core/ports/repositories"
	"github.com/finvera/ledger-service/internal/models"
	"github.com/finvera/ledger-service/internal/utils/mapping"
	"github.com/finvera/ledger-service/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const journalColumns = `journal_id, tenant_id, effective_date, currency_code, idempotency_key, metadata, amount, created_at`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTxRepositoryFacade
}

// NewJournalRepository creates a new repository for journal and entry data.
func NewJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTxRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal commits the journal, its entries and the account balance
// updates in a single database transaction. All rows become visible together
// or not at all; no reader ever observes a half-posted journal.
//
// The unique index on (tenant_id, idempotency_key) makes the check-then-insert
// race-free: of two concurrent retries exactly one insert succeeds, the other
// returns apperrors.ErrDuplicate and the caller fetches the winner's journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	// 1. Insert the journal. The idempotency key conflict is detected here,
	// before any side effect.
	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.TenantID,
		modelJournal.EffectiveDate,
		modelJournal.CurrencyCode,
		modelJournal.IdempotencyKey,
		modelJournal.Metadata,
		modelJournal.Amount,
		modelJournal.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: journal with idempotency key %q already exists", apperrors.ErrDuplicate, modelJournal.IdempotencyKey)
		}
		return fmt.Errorf("failed to insert journal %s: %w", modelJournal.JournalID, err)
	}

	// 2. Lock the affected accounts and read their live balances.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, journal.TenantID, accountIDs)
	if err != nil {
		return err
	}

	// 3. Overdraft rule: the net change applied to the live balance must not
	// drive an allow_negative=false account below zero.
	for accountID, change := range balanceChanges {
		account := lockedAccounts[accountID]
		if !account.AllowNegative && account.Balance.Add(change).IsNegative() {
			return fmt.Errorf("%w: account %s balance %s cannot absorb change %s",
				apperrors.ErrOverdraft, accountID, account.Balance.String(), change.String())
		}
	}

	// 4. Apply the balance changes to the locked rows.
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges); err != nil {
		return err
	}

	// 5. Insert the entries in request order, each carrying the account's
	// running balance after the line.
	entryQuery := `
		INSERT INTO entries (entry_id, journal_id, account_id, amount, direction, running_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	runningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accountID, account := range lockedAccounts {
		runningBalances[accountID] = account.Balance
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		account := lockedAccounts[entry.AccountID]
		signedAmount := entry.Amount
		if entry.Direction != account.AccountType.NormalSide() {
			signedAmount = signedAmount.Neg()
		}
		newRunningBalance := runningBalances[entry.AccountID].Add(signedAmount)
		runningBalances[entry.AccountID] = newRunningBalance

		modelEntry := mapping.ToModelEntry(entry)
		modelEntry.RunningBalance = newRunningBalance
		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.JournalID,
			modelEntry.AccountID,
			modelEntry.Amount,
			modelEntry.Direction,
			modelEntry.RunningBalance,
			modelEntry.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert entries for journal %s: %w", modelJournal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

func scanJournalRow(row pgx.Row) (*domain.Journal, error) {
	var modelJournal models.Journal
	err := row.Scan(
		&modelJournal.JournalID,
		&modelJournal.TenantID,
		&modelJournal.EffectiveDate,
		&modelJournal.CurrencyCode,
		&modelJournal.IdempotencyKey,
		&modelJournal.Metadata,
		&modelJournal.Amount,
		&modelJournal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	domainJournal := mapping.ToDomainJournal(modelJournal)
	return &domainJournal, nil
}

// FindJournalByID retrieves a journal within the tenant scope.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE tenant_id = $1 AND journal_id = $2;
	`
	journal, err := scanJournalRow(r.Pool.QueryRow(ctx, query, tenantID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return journal, nil
}

// FindJournalByIdempotencyKey retrieves the journal previously committed for
// the tenant's idempotency key, if any.
func (r *PgxJournalRepository) FindJournalByIdempotencyKey(ctx context.Context, tenantID, idempotencyKey string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE tenant_id = $1 AND idempotency_key = $2;
	`
	journal, err := scanJournalRow(r.Pool.QueryRow(ctx, query, tenantID, idempotencyKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by idempotency key: %w", err)
	}
	return journal, nil
}

// FindEntriesByJournalID retrieves all entries of a journal in insertion order.
func (r *PgxJournalRepository) FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.Entry, error) {
	query := `
		SELECT entry_id, journal_id, account_id, amount, direction, running_balance, created_at
		FROM entries
		WHERE journal_id = $1
		ORDER BY seq;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		err := rows.Scan(
			&e.EntryID,
			&e.JournalID,
			&e.AccountID,
			&e.Amount,
			&e.Direction,
			&e.RunningBalance,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for journal %s: %w", journalID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for journal %s: %w", journalID, err)
	}
	return mapping.ToDomainEntrySlice(entries), nil
}

// ListJournals retrieves one page of the tenant's journals ordered by
// (effective_date DESC, created_at DESC), using token-based pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, tenantID string, filter portsrepo.ListJournalsFilter, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT ` + journalColumns + `
		FROM journals j
		WHERE j.tenant_id = $1
	`
	args := []interface{}{tenantID}

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM entries e WHERE e.journal_id = j.journal_id AND e.account_id = $%d)", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND j.effective_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND j.effective_date <= $%d", len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastEffectiveDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, lastEffectiveDate, lastCreatedAt)
		query += fmt.Sprintf(" AND (j.effective_date, j.created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(" ORDER BY j.effective_date DESC, j.created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		journal, err := scanJournalRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	var token *string
	if len(journals) == fetchLimit {
		journals = journals[:limit]
		last := journals[len(journals)-1]
		encoded := pagination.EncodeToken(last.EffectiveDate, last.CreatedAt)
		token = &encoded
	}
	return journals, token, nil
}

// SumEntries returns the raw debit-minus-credit sum over the account's
// entries with effective_date <= asOf. Zero when the account has no entries.
func (r *PgxJournalRepository) SumEntries(ctx context.Context, tenantID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN e.direction = 'DEBIT' THEN e.amount ELSE -e.amount END), 0)
		FROM entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE j.tenant_id = $1 AND e.account_id = $2 AND j.effective_date <= $3;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID, asOf).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return sum, nil
}

// SumEntriesBatch is SumEntries over several accounts in one query. Accounts
// with no entries are absent from the result map.
func (r *PgxJournalRepository) SumEntriesBatch(ctx context.Context, tenantID string, accountIDs []string, asOf time.Time) (map[string]decimal.Decimal, error) {
	if len(accountIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	query := `
		SELECT e.account_id, SUM(CASE WHEN e.direction = 'DEBIT' THEN e.amount ELSE -e.amount END)
		FROM entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE j.tenant_id = $1 AND e.account_id = ANY($2) AND j.effective_date <= $3
		GROUP BY e.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries for accounts: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var sum decimal.Decimal
		if err := rows.Scan(&accountID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan entry sum row: %w", err)
		}
		sums[accountID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry sum rows: %w", err)
	}
	return sums, nil
}

// FindEntriesInPeriod returns all entries on the account with effective dates
// inside [from, to], ordered by (effective_date, insertion order). Entries
// carry their journal's effective date and metadata.
func (r *PgxJournalRepository) FindEntriesInPeriod(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.Entry, error) {
	query := `
		SELECT e.entry_id, e.journal_id, e.account_id, e.amount, e.direction, e.running_balance, e.created_at, j.effective_date, j.metadata
		FROM entries e
		JOIN journals j ON e.journal_id = j.journal_id
		WHERE j.tenant_id = $1 AND e.account_id = $2 AND j.effective_date >= $3 AND j.effective_date <= $4
		ORDER BY j.effective_date, e.seq;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		var e models.Entry
		var effectiveDate time.Time
		var journalMetadata string
		err := rows.Scan(
			&e.EntryID,
			&e.JournalID,
			&e.AccountID,
			&e.Amount,
			&e.Direction,
			&e.RunningBalance,
			&e.CreatedAt,
			&effectiveDate,
			&journalMetadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period entry row: %w", err)
		}
		entry := mapping.ToDomainEntry(e)
		entry.EffectiveDate = effectiveDate
		entry.JournalMetadata = journalMetadata
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period entry rows: %w", err)
	}
	return entries, nil
}
