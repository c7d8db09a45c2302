package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatusTransitions(t *testing.T) {
	assert.True(t, Pending.CanTransitionTo(Completed))
	assert.True(t, Pending.CanTransitionTo(Failed))
	assert.True(t, Pending.CanTransitionTo(Cancelled))

	// Terminal states never transition.
	for _, s := range []TransactionStatus{Completed, Failed, Cancelled} {
		for _, next := range []TransactionStatus{Pending, Completed, Failed, Cancelled} {
			assert.False(t, s.CanTransitionTo(next), "%s -> %s should be rejected", s, next)
		}
	}

	assert.False(t, Pending.CanTransitionTo(Pending))
	assert.False(t, Pending.CanTransitionTo(TransactionStatus("settled")))
}

func TestAccountCanCover(t *testing.T) {
	acc := Account{Kind: Checking, Balance: decimal.RequireFromString("100.00")}

	assert.True(t, acc.CanCover(decimal.RequireFromString("100.00")))
	assert.True(t, acc.CanCover(decimal.RequireFromString("99.99")))
	assert.False(t, acc.CanCover(decimal.RequireFromString("100.01")))

	// Credit accounts carry no explicit limit, so they get no overdraft either.
	credit := Account{Kind: Credit, Balance: decimal.Zero}
	assert.False(t, credit.AllowsOverdraft())
	assert.False(t, credit.CanCover(decimal.RequireFromString("0.01")))
}

func TestTransactionFilterIsZero(t *testing.T) {
	assert.True(t, TransactionFilter{}.IsZero())
	assert.False(t, TransactionFilter{Search: "rent"}.IsZero())
	assert.False(t, TransactionFilter{Category: "Food & Dining"}.IsZero())
}
