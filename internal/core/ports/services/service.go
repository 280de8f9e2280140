package services

// ServiceContainer holds instances of all the application services.
// It is built once at startup and handed to the HTTP handlers.
type ServiceContainer struct {
	Document  DocumentSvcFacade
	Ledger    LedgerSvcFacade
	Registry  RegistrySvcFacade
	Reporting ReportingService
}
