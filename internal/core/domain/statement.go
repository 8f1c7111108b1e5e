package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is a single entry inside a statement window, annotated with
// the cumulative balance after the line.
type StatementLine struct {
	EntryID        string          `json:"entryID"`
	JournalID      string          `json:"journalID"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      Direction       `json:"direction"`
	SignedAmount   decimal.Decimal `json:"signedAmount"` // Amount signed by the account's normal side
	RunningBalance decimal.Decimal `json:"runningBalance"`
	Metadata       string          `json:"metadata"` // Metadata of the owning journal
}

// Statement is a dated ledger extract for one account: opening balance,
// ordered lines with running balances, closing balance.
// closing == opening + sum of signed line amounts always holds.
type Statement struct {
	AccountID      string          `json:"accountID"`
	CurrencyCode   string          `json:"currencyCode"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Lines          []StatementLine `json:"lines"`
}
