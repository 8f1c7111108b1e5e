package mapping

import (
	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/finvera/ledger-service/internal/models"
)

// ToModelJournal converts a domain.Journal to its DB row representation.
// Entries are persisted separately.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:      d.JournalID,
		TenantID:       d.TenantID,
		EffectiveDate:  d.EffectiveDate,
		CurrencyCode:   d.CurrencyCode,
		IdempotencyKey: d.IdempotencyKey,
		Metadata:       d.Metadata,
		Amount:         d.Amount,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournal converts a DB row back into the domain representation.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:      m.JournalID,
		TenantID:       m.TenantID,
		EffectiveDate:  m.EffectiveDate,
		CurrencyCode:   m.CurrencyCode,
		IdempotencyKey: m.IdempotencyKey,
		Metadata:       m.Metadata,
		Amount:         m.Amount,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelEntry converts a domain.Entry to its DB row representation.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:        d.EntryID,
		JournalID:      d.JournalID,
		AccountID:      d.AccountID,
		Amount:         d.Amount,
		Direction:      string(d.Direction),
		RunningBalance: d.RunningBalance,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainEntry converts a DB row back into the domain representation.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:        m.EntryID,
		JournalID:      m.JournalID,
		AccountID:      m.AccountID,
		Amount:         m.Amount,
		Direction:      domain.Direction(m.Direction),
		RunningBalance: m.RunningBalance,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainEntrySlice converts a slice of entry rows.
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	entries := make([]domain.Entry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainEntry(m)
	}
	return entries
}
