package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind mirrors the domain account kind for DB storage.
type AccountKind string

// Account is the accounts table row.
type Account struct {
	AccountID     string          `db:"account_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"account_name"`
	Kind          AccountKind     `db:"account_type"`
	AccountNumber string          `db:"account_number"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	IsPrimary     bool            `db:"is_primary"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
