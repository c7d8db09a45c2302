package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
)

// NewRepositoryContainer wires every Postgres-backed repository against one
// shared connection pool.
func NewRepositoryContainer(dbPool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Account:      newPgxAccountRepository(dbPool),
		Ledger:       newPgxLedgerRepository(dbPool),
		Recent:       newPgxRecentActivityRepository(dbPool),
		User:         newPgxUserRepository(dbPool),
		ExchangeRate: newPgxExchangeRateRepository(dbPool),
	}
}
