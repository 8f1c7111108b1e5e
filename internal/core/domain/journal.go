package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether an entry line is a Debit or a Credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// IsValid reports whether the direction is DEBIT or CREDIT.
func (d Direction) IsValid() bool {
	return d == Debit || d == Credit
}

// Journal represents a single, balanced financial event composed of multiple
// entries. Journals are immutable once posted; corrections are new,
// offsetting journals.
type Journal struct {
	JournalID      string          `json:"journalID"` // Primary Key (UUID)
	TenantID       string          `json:"tenantID"`
	EffectiveDate  time.Time       `json:"effectiveDate"` // Calendar date the event occurred
	CurrencyCode   string          `json:"currencyCode"`  // Single currency per journal
	IdempotencyKey string          `json:"idempotencyKey"`
	Metadata       string          `json:"metadata"`
	Amount         decimal.Decimal `json:"amount"` // Total debit side, the journal's economic value
	Entries        []Entry         `json:"entries,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Entry represents a single debit or credit line within a journal, affecting
// one account. Entries are append-only: created atomically with their journal
// and never mutated afterwards.
type Entry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	JournalID      string          `json:"journalID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"` // Positive value
	Direction      Direction       `json:"direction"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this entry
	CreatedAt      time.Time       `json:"createdAt"`

	// Annotation fields populated when entries are read joined to their
	// journal; not stored on the entry row itself.
	EffectiveDate   time.Time `json:"effectiveDate,omitempty"`
	JournalMetadata string    `json:"journalMetadata,omitempty"`
}
