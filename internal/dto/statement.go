package dto

import (
	"time"

	"github.com/finvera/ledger-service/internal/core/domain"
)

// StatementLineResponse is one statement line with its running balance.
type StatementLineResponse struct {
	EntryID        string           `json:"entryID"`
	JournalID      string           `json:"journalID"`
	EffectiveDate  string           `json:"effectiveDate"` // YYYY-MM-DD
	Amount         string           `json:"amount"`
	Direction      domain.Direction `json:"direction"`
	SignedAmount   string           `json:"signedAmount"`
	RunningBalance string           `json:"runningBalance"`
	Metadata       string           `json:"metadata,omitempty"`
}

// StatementResponse is a dated ledger extract for one account.
type StatementResponse struct {
	AccountID      string                  `json:"accountID"`
	CurrencyCode   string                  `json:"currencyCode"`
	StartDate      string                  `json:"startDate"` // YYYY-MM-DD
	EndDate        string                  `json:"endDate"`   // YYYY-MM-DD
	OpeningBalance string                  `json:"openingBalance"`
	ClosingBalance string                  `json:"closingBalance"`
	Lines          []StatementLineResponse `json:"lines"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	lines := make([]StatementLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = StatementLineResponse{
			EntryID:        l.EntryID,
			JournalID:      l.JournalID,
			EffectiveDate:  l.EffectiveDate.Format(time.DateOnly),
			Amount:         l.Amount.String(),
			Direction:      l.Direction,
			SignedAmount:   l.SignedAmount.String(),
			RunningBalance: l.RunningBalance.String(),
			Metadata:       l.Metadata,
		}
	}
	return StatementResponse{
		AccountID:      s.AccountID,
		CurrencyCode:   s.CurrencyCode,
		StartDate:      s.StartDate.Format(time.DateOnly),
		EndDate:        s.EndDate.Format(time.DateOnly),
		OpeningBalance: s.OpeningBalance.String(),
		ClosingBalance: s.ClosingBalance.String(),
		Lines:          lines,
	}
}
