// Package memory implements the repository ports on an in-process store.
// It backs the demo storage driver and the concurrency tests; the semantics
// mirror the Postgres adapter, including atomicity of money movement.
package memory

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financora/ledger_backend/internal/core/domain"
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
)

// Failpoint names accepted by Store.FailAt. Each one aborts the atomic unit
// at a different stage so tests can prove nothing partial ever commits.
const (
	FailBeforeWrite  = "before-write"
	FailAfterDebit   = "after-debit"
	FailBeforeCommit = "before-commit"
)

type accountRecord struct {
	account domain.Account
	version uint64 // Bumped on every balance change
}

// Store holds all state behind a single mutex. Every repository method is a
// critical section, so an operation is observed either fully applied or not
// at all, matching the DB transaction guarantees of the pgsql adapter.
type Store struct {
	mu sync.Mutex

	users        map[string]domain.User
	usersByEmail map[string]string

	accounts map[string]*accountRecord

	transactions     []domain.Transaction
	transactionsByID map[string]int
	referenceIndex   map[string]int // reference -> index into transactions; references are unique system-wide

	recentTransfers  []domain.RecentTransfer
	recentRecipients map[string]map[string]*domain.RecentRecipient

	rates map[string]domain.ExchangeRate // "FROM->TO"

	failpoints map[string]error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:            make(map[string]domain.User),
		usersByEmail:     make(map[string]string),
		accounts:         make(map[string]*accountRecord),
		transactionsByID: make(map[string]int),
		referenceIndex:   make(map[string]int),
		recentRecipients: make(map[string]map[string]*domain.RecentRecipient),
		rates:            make(map[string]domain.ExchangeRate),
		failpoints:       make(map[string]error),
	}
}

// NewRepositoryContainer exposes one store through every repository port.
func NewRepositoryContainer(store *Store) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Account:      &accountRepository{store: store},
		Ledger:       &ledgerRepository{store: store},
		Recent:       &recentActivityRepository{store: store},
		User:         &userRepository{store: store},
		ExchangeRate: &exchangeRateRepository{store: store},
	}
}

// FailAt arms a failpoint: the next atomic write hitting that stage returns
// err instead of committing. Passing a nil err disarms it. Test-only.
func (s *Store) FailAt(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failpoints, name)
		return
	}
	s.failpoints[name] = err
}

func (s *Store) failpoint(name string) error {
	return s.failpoints[name]
}

// SeedRate installs a conversion rate for reporting.
func (s *Store) SeedRate(from, to string, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[from+"->"+to] = domain.ExchangeRate{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		AsOf:             time.Now().UTC(),
	}
}

// AccountVersion reports how many balance changes an account has seen.
// Test-only; used to detect lost updates under concurrency.
func (s *Store) AccountVersion(accountID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.accounts[accountID]; ok {
		return rec.version
	}
	return 0
}
