package repositories

// RepositoryContainer bundles every repository behind one handle so the
// storage driver can be swapped at startup without touching service wiring.
type RepositoryContainer struct {
	Account      AccountRepository
	Ledger       LedgerRepository
	Recent       RecentActivityRepository
	User         UserRepository
	ExchangeRate ExchangeRateRepository
}
