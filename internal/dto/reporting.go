package dto

import (
	"time"

	"github.com/financora/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyBalance is one per-currency line of the balance snapshot.
type CurrencyBalance struct {
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Converted    decimal.Decimal `json:"converted"` // In the reporting currency
}

// BalanceSnapshotResponse aggregates all active balances for a user,
// converted into a single reporting currency for the summary cards.
type BalanceSnapshotResponse struct {
	ReportingCurrency string            `json:"reportingCurrency"`
	Total             decimal.Decimal   `json:"total"`
	TotalDisplay      string            `json:"totalDisplay"` // Total rounded to the currency's minor unit
	Balances          []CurrencyBalance `json:"balances"`
}

// RecentRecipientResponse is the public shape of a recent external payee.
type RecentRecipientResponse struct {
	Identifier string          `json:"identifier"`
	LastAmount decimal.Decimal `json:"lastAmount"`
	LastUsedAt time.Time       `json:"lastUsedAt"`
	UseCount   int             `json:"useCount"`
}

// ToRecentRecipientResponses converts the domain slice.
func ToRecentRecipientResponses(rs []domain.RecentRecipient) []RecentRecipientResponse {
	out := make([]RecentRecipientResponse, len(rs))
	for i, r := range rs {
		out[i] = RecentRecipientResponse{
			Identifier: r.Identifier,
			LastAmount: r.LastAmount,
			LastUsedAt: r.LastUsedAt,
			UseCount:   r.UseCount,
		}
	}
	return out
}

// RecentTransferResponse is the public shape of a recent transfer summary.
type RecentTransferResponse struct {
	FromAccountID string          `json:"fromAccountID"`
	ToAccountID   *string         `json:"toAccountID,omitempty"`
	Recipient     string          `json:"recipient,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToRecentTransferResponses converts the domain slice.
func ToRecentTransferResponses(rs []domain.RecentTransfer) []RecentTransferResponse {
	out := make([]RecentTransferResponse, len(rs))
	for i, r := range rs {
		out[i] = RecentTransferResponse{
			FromAccountID: r.FromAccountID,
			ToAccountID:   r.ToAccountID,
			Recipient:     r.Recipient,
			Amount:        r.Amount,
			CreatedAt:     r.CreatedAt,
		}
	}
	return out
}
