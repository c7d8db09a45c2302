package dto

import (
	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse is the public shape of an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	AccountNumber string          `json:"accountNumber"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	IsPrimary     bool            `json:"isPrimary"`
}

// ToAccountResponse converts a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Name:          a.Name,
		Kind:          string(a.Kind),
		AccountNumber: a.AccountNumber,
		CurrencyCode:  a.CurrencyCode,
		Balance:       a.Balance,
		IsPrimary:     a.IsPrimary,
	}
}

// ListAccountsResponse wraps the account list endpoint payload.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
