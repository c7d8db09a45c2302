package services

import (
	portsrepo "github.com/financora/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/financora/ledger_backend/internal/core/ports/services"
	"github.com/financora/ledger_backend/internal/platform/config"
)

// NewServiceContainer wires every service facade against the configured
// repository set.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryContainer) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.Account),
		Ledger:    NewLedgerService(repos.Ledger, repos.Account),
		Reporting: NewReportingService(repos.Account, repos.Recent, repos.ExchangeRate, cfg.ReportingCurrency),
		User:      NewUserService(repos.User),
	}
}
