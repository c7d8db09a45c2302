package mapping

import (
	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/financora/ledger_backend/internal/models"
)

// ToModelAccount converts a domain account to its DB row.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		UserID:        d.UserID,
		Name:          d.Name,
		Kind:          models.AccountKind(d.Kind),
		AccountNumber: d.AccountNumber,
		CurrencyCode:  d.CurrencyCode,
		Balance:       d.Balance,
		IsPrimary:     d.IsPrimary,
		IsActive:      d.IsActive,
		AuditFields:   toModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a DB row to its domain account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		UserID:        m.UserID,
		Name:          m.Name,
		Kind:          domain.AccountKind(m.Kind),
		AccountNumber: m.AccountNumber,
		CurrencyCode:  m.CurrencyCode,
		Balance:       m.Balance,
		IsPrimary:     m.IsPrimary,
		IsActive:      m.IsActive,
		AuditFields:   toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of DB rows.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
