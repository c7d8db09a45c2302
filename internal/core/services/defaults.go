package services

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/core/domain"
)

// DefaultCurrencyCode is the currency every starter account opens in.
const DefaultCurrencyCode = "INR"

type starterAccountSpec struct {
	name         string
	kind         domain.AccountKind
	numberPrefix string
	balance      string
	isPrimary    bool
}

// Every new user starts with the same three demo accounts so the product is
// usable before any real data exists.
var starterAccountSpecs = []starterAccountSpec{
	{name: "Primary Checking", kind: domain.Checking, numberPrefix: "CHK", balance: "1032450.32", isPrimary: true},
	{name: "Savings Account", kind: domain.Savings, numberPrefix: "SAV", balance: "3752089.45"},
	{name: "Investment Account", kind: domain.Investment, numberPrefix: "INV", balance: "6548745.89"},
}

// accountNumber builds a customer-facing number like "CHK1724912345678".
// Display-only; uniqueness is not required.
func accountNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%d%04d", prefix, now.Unix(), rand.Intn(10000))
}

// StarterAccounts builds the default account set for a newly registered user.
func StarterAccounts(userID string, now time.Time) []domain.Account {
	accounts := make([]domain.Account, 0, len(starterAccountSpecs))
	for _, spec := range starterAccountSpecs {
		accounts = append(accounts, domain.Account{
			AccountID:     uuid.NewString(),
			UserID:        userID,
			Name:          spec.name,
			Kind:          spec.kind,
			AccountNumber: accountNumber(spec.numberPrefix, now),
			CurrencyCode:  DefaultCurrencyCode,
			Balance:       decimal.RequireFromString(spec.balance),
			IsPrimary:     spec.isPrimary,
			IsActive:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	return accounts
}
