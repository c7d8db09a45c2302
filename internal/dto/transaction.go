package dto

import (
	"time"

	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records an income or expense. Amount is a
// positive magnitude; the service applies the sign from the type.
type CreateTransactionRequest struct {
	AccountID      string          `json:"accountID" binding:"required"`
	Type           string          `json:"type" binding:"required,oneof=income expense"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Category       string          `json:"category" binding:"required"`
	IdempotencyKey string          `json:"idempotencyKey,omitempty"`
}

// UpdateTransactionStatusRequest moves a pending transaction to a terminal state.
type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed cancelled"`
}

// ListTransactionsParams narrows and pages the transaction history.
// Dates are inclusive and parsed as YYYY-MM-DD.
type ListTransactionsParams struct {
	Limit     int        `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken *string    `form:"nextToken"`
	Search    string     `form:"search"`
	Category  string     `form:"category"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
}

// Filter converts the query params into a domain filter.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{
		Search:   p.Search,
		Category: p.Category,
		DateFrom: p.DateFrom,
		DateTo:   p.DateTo,
	}
}

// TransactionResponse is the public shape of a ledger entry.
type TransactionResponse struct {
	TransactionID   string           `json:"transactionID"`
	ReferenceNumber string           `json:"referenceNumber"`
	AccountID       string           `json:"accountID"`
	AccountName     string           `json:"accountName,omitempty"`
	ToAccountID     *string          `json:"toAccountID,omitempty"`
	Type            string           `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	Status          string           `json:"status"`
	TransactionDate time.Time        `json:"transactionDate"`
	BalanceAfter    *decimal.Decimal `json:"balanceAfter,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		ReferenceNumber: t.ReferenceNumber,
		AccountID:       t.AccountID,
		AccountName:     t.AccountName,
		ToAccountID:     t.ToAccountID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Description:     t.Description,
		Category:        t.Category,
		Status:          string(t.Status),
		TransactionDate: t.TransactionDate,
		BalanceAfter:    t.BalanceAfter,
		CreatedAt:       t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}

// ListTransactionsResponse wraps the history endpoint payload.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
