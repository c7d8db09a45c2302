package dto

import (
	"github.com/shopspring/decimal"
)

// InternalTransferRequest moves funds between two accounts of the same user.
type InternalTransferRequest struct {
	FromAccountID  string          `json:"fromAccountID" binding:"required"`
	ToAccountID    string          `json:"toAccountID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Memo           string          `json:"memo,omitempty"`
	IdempotencyKey string          `json:"idempotencyKey,omitempty"`
}

// ExternalTransferRequest pays a recipient identified only by email or
// phone; there is no counterpart account in this system.
type ExternalTransferRequest struct {
	FromAccountID  string          `json:"fromAccountID" binding:"required"`
	Recipient      string          `json:"recipient" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Memo           string          `json:"memo,omitempty"`
	IdempotencyKey string          `json:"idempotencyKey,omitempty"`
}
