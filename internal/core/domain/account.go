package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies a user-facing account.
type AccountKind string

const (
	Checking   AccountKind = "checking"
	Savings    AccountKind = "savings"
	Investment AccountKind = "investment"
	Credit     AccountKind = "credit"
)

// ValidAccountKind reports whether k is one of the supported account kinds.
func ValidAccountKind(k AccountKind) bool {
	switch k {
	case Checking, Savings, Investment, Credit:
		return true
	}
	return false
}

// Account represents a financial account owned by a single user.
// This is the primary representation used by services.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owning user (NON-NULL)
	Name          string          `json:"name"`          // Display name, e.g. "Primary Checking"
	Kind          AccountKind     `json:"kind"`          // checking, savings, investment, credit
	AccountNumber string          `json:"accountNumber"` // Customer-facing number, e.g. "CHK17249..."
	CurrencyCode  string          `json:"currencyCode"`  // ISO 4217 code, e.g. "INR"
	Balance       decimal.Decimal `json:"balance"`       // Current balance, exact decimal
	IsPrimary     bool            `json:"isPrimary"`     // At most one primary account per user
	IsActive      bool            `json:"isActive"`      // Soft-delete flag
	AuditFields
}

// AllowsOverdraft reports whether the account may carry a negative balance.
// No account kind carries an explicit credit limit, so overdraft is never
// allowed; a future credit-limit field would hang off this method.
func (a Account) AllowsOverdraft() bool {
	return false
}

// CanCover reports whether debiting amount from the account would leave it
// at a permitted balance. amount is a positive magnitude.
func (a Account) CanCover(amount decimal.Decimal) bool {
	if a.AllowsOverdraft() {
		return true
	}
	return a.Balance.GreaterThanOrEqual(amount)
}
