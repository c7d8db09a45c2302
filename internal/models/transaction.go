package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row. AccountName is populated by a
// join against accounts for presentation queries, it has no column of its
// own.
type Transaction struct {
	TransactionID   string           `db:"transaction_id"`
	ReferenceNumber string           `db:"reference_number"`
	UserID          string           `db:"user_id"`
	AccountID       string           `db:"account_id"`
	ToAccountID     *string          `db:"to_account_id"`
	Type            string           `db:"transaction_type"`
	Amount          decimal.Decimal  `db:"amount"`
	Description     string           `db:"description"`
	Category        string           `db:"category"`
	Status          string           `db:"status"`
	TransactionDate time.Time        `db:"transaction_date"`
	BalanceAfter    *decimal.Decimal `db:"balance_after"`
	AccountName     string           `db:"-"`
	AuditFields
}
