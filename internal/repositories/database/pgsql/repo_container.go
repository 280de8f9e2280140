package pgsql

import (
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo:    newPgxDocumentRepository(dbPool),
		InstallmentRepo: newPgxInstallmentRepository(dbPool),
		MovementRepo:    newPgxMovementRepository(dbPool),
		PartyRepo:       newPgxPartyRepository(dbPool),
		JobSiteRepo:     newPgxJobSiteRepository(dbPool),
		CatalogRepo:     newPgxCatalogRepository(dbPool),
		AccountRepo:     newPgxFinancialAccountRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
