package mapping

import (
	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/financora/ledger_backend/internal/models"
)

// ToModelTransaction converts a domain transaction to its DB row.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		ReferenceNumber: d.ReferenceNumber,
		UserID:          d.UserID,
		AccountID:       d.AccountID,
		ToAccountID:     d.ToAccountID,
		Type:            string(d.Type),
		Amount:          d.Amount,
		Description:     d.Description,
		Category:        d.Category,
		Status:          string(d.Status),
		TransactionDate: d.TransactionDate,
		BalanceAfter:    d.BalanceAfter,
		AccountName:     d.AccountName,
		AuditFields:     toModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a DB row to its domain transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		ReferenceNumber: m.ReferenceNumber,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		ToAccountID:     m.ToAccountID,
		Type:            domain.TransactionType(m.Type),
		Amount:          m.Amount,
		Description:     m.Description,
		Category:        m.Category,
		Status:          domain.TransactionStatus(m.Status),
		TransactionDate: m.TransactionDate,
		BalanceAfter:    m.BalanceAfter,
		AccountName:     m.AccountName,
		AuditFields:     toDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of DB rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
