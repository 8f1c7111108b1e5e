package dto

import (
	"time"

	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryRequest is a single posting line in a PostTransaction request.
// Amounts are decimal strings on the wire; the service rejects non-positive values.
type EntryRequest struct {
	AccountID string           `json:"accountID" binding:"required"`
	Amount    decimal.Decimal  `json:"amount" binding:"required"`
	Direction domain.Direction `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
}

// PostTransactionRequest defines a balanced multi-entry posting.
// EffectiveDate is a YYYY-MM-DD calendar date; empty means today.
// The idempotency key dedupes retried requests within the tenant.
type PostTransactionRequest struct {
	Entries        []EntryRequest `json:"entries" binding:"required,min=2,dive"`
	EffectiveDate  string         `json:"effectiveDate"`
	IdempotencyKey string         `json:"idempotencyKey" binding:"required"`
	Metadata       string         `json:"metadata"`
}

// EntryResponse defines the data returned for one entry line.
type EntryResponse struct {
	EntryID        string           `json:"entryID"`
	AccountID      string           `json:"accountID"`
	Amount         string           `json:"amount"`
	Direction      domain.Direction `json:"direction"`
	RunningBalance string           `json:"runningBalance"`
}

// JournalResponse defines the data returned for a posted journal.
type JournalResponse struct {
	JournalID      string          `json:"journalID"`
	EffectiveDate  string          `json:"effectiveDate"` // YYYY-MM-DD
	CurrencyCode   string          `json:"currencyCode"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Metadata       string          `json:"metadata,omitempty"`
	Amount         string          `json:"amount"`
	Entries        []EntryResponse `json:"entries,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		AccountID:      e.AccountID,
		Amount:         e.Amount.String(),
		Direction:      e.Direction,
		RunningBalance: e.RunningBalance.String(),
	}
}

// ToJournalResponse converts a domain.Journal (with or without entries) to
// JournalResponse.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:      j.JournalID,
		EffectiveDate:  j.EffectiveDate.Format(time.DateOnly),
		CurrencyCode:   j.CurrencyCode,
		IdempotencyKey: j.IdempotencyKey,
		Metadata:       j.Metadata,
		Amount:         j.Amount.String(),
		CreatedAt:      j.CreatedAt,
	}
	if len(j.Entries) > 0 {
		resp.Entries = make([]EntryResponse, len(j.Entries))
		for i := range j.Entries {
			resp.Entries[i] = ToEntryResponse(&j.Entries[i])
		}
	}
	return resp
}

// ListTransactionsParams defines query parameters for listing journals.
// From/To are YYYY-MM-DD calendar dates.
type ListTransactionsParams struct {
	AccountID string  `form:"accountID"`
	From      string  `form:"from"`
	To        string  `form:"to"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps one page of journals.
type ListTransactionsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
