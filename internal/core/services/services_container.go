package services

import (
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Registry = NewRegistryService(
		repos.PartyRepo,
		repos.JobSiteRepo,
		repos.CatalogRepo,
		repos.AccountRepo,
	)

	container.Document = NewDocumentService(
		repos.DocumentRepo,
		repos.InstallmentRepo,
		repos.MovementRepo,
		repos.PartyRepo,
		repos.JobSiteRepo,
		repos.CatalogRepo,
		WithConflictRetryAttempts(cfg.ConflictRetryAttempts),
	)

	container.Ledger = NewLedgerService(
		repos.MovementRepo,
		repos.InstallmentRepo,
		repos.AccountRepo,
		repos.CatalogRepo,
		repos.PartyRepo,
		repos.JobSiteRepo,
	)

	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.DocumentSvcFacade = (*documentService)(nil)
	_ portssvc.LedgerSvcFacade   = (*ledgerService)(nil)
	_ portssvc.RegistrySvcFacade = (*registryService)(nil)
	_ portssvc.ReportingService  = (*reportingService)(nil)
)
