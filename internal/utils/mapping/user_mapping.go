package mapping

import (
	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/financora/ledger_backend/internal/models"
)

// ToModelUser converts a domain user to its DB row.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		AuditFields:  toModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a DB row to its domain user.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		AuditFields:  toDomainAuditFields(m.AuditFields),
	}
}
