package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	DocumentRepo    DocumentRepositoryWithTx
	InstallmentRepo InstallmentRepositoryFacade
	MovementRepo    MovementRepositoryWithTx
	PartyRepo       PartyRepositoryFacade
	JobSiteRepo     JobSiteRepositoryFacade
	CatalogRepo     CatalogRepositoryFacade
	AccountRepo     FinancialAccountRepositoryFacade
	ReportingRepo   ReportingRepository
}
