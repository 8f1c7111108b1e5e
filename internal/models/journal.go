package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is the database row representation of a posted journal.
type Journal struct {
	JournalID      string          `db:"journal_id"`
	TenantID       string          `db:"tenant_id"`
	EffectiveDate  time.Time       `db:"effective_date"`
	CurrencyCode   string          `db:"currency_code"`
	IdempotencyKey string          `db:"idempotency_key"`
	Metadata       string          `db:"metadata"`
	Amount         decimal.Decimal `db:"amount"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Entry is the database row representation of a journal entry line.
type Entry struct {
	EntryID        string          `db:"entry_id"`
	JournalID      string          `db:"journal_id"`
	AccountID      string          `db:"account_id"`
	Amount         decimal.Decimal `db:"amount"`
	Direction      string          `db:"direction"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	CreatedAt      time.Time       `db:"created_at"`
}
