package mapping

import (
	"github.com/finvera/ledger-service/internal/core/domain"
	"github.com/finvera/ledger-service/internal/models"
)

// ToModelAccount converts a domain.Account to its DB row representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		TenantID:      d.TenantID,
		AccountCode:   d.AccountCode,
		AccountType:   models.AccountType(d.AccountType),
		CurrencyCode:  d.CurrencyCode,
		AllowNegative: d.AllowNegative,
		Metadata:      d.Metadata,
		Balance:       d.Balance,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainAccount converts a DB row back into the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		TenantID:      m.TenantID,
		AccountCode:   m.AccountCode,
		AccountType:   domain.AccountType(m.AccountType),
		CurrencyCode:  m.CurrencyCode,
		AllowNegative: m.AllowNegative,
		Metadata:      m.Metadata,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt,
	}
}
