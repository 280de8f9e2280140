package repositories

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
)

// PartyReader defines read operations for customers, suppliers and employees
type PartyReader interface {
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties lists parties of one kind (all kinds when nil), ordered by name.
	// search matches a prefix of the name, fiscal code or VAT number.
	ListParties(ctx context.Context, kind *domain.PartyKind, search string, limit int, offset int) ([]domain.Party, error)
}

// PartyWriter defines write operations for parties
type PartyWriter interface {
	SaveParty(ctx context.Context, party domain.Party) error
	UpdateParty(ctx context.Context, party domain.Party) error
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}

// JobSiteReader defines read operations for job sites
type JobSiteReader interface {
	FindJobSiteByID(ctx context.Context, jobSiteID string) (*domain.JobSite, error)
	ListJobSites(ctx context.Context, customerID *string, status *domain.JobSiteStatus, limit int, offset int) ([]domain.JobSite, error)
}

// JobSiteWriter defines write operations for job sites
type JobSiteWriter interface {
	SaveJobSite(ctx context.Context, jobSite domain.JobSite) error
	UpdateJobSite(ctx context.Context, jobSite domain.JobSite) error
}

// JobSiteRepositoryFacade combines all job-site-related repository interfaces
type JobSiteRepositoryFacade interface {
	JobSiteReader
	JobSiteWriter
}

// CatalogReader defines read operations for VAT rates, payment terms and
// operating categories
type CatalogReader interface {
	FindVATRateByID(ctx context.Context, vatRateID string) (*domain.VATRate, error)

	// FindVATRatesByIDs returns the rates found, keyed by id. Missing ids are simply absent.
	FindVATRatesByIDs(ctx context.Context, vatRateIDs []string) (map[string]domain.VATRate, error)
	ListVATRates(ctx context.Context, activeOnly bool) ([]domain.VATRate, error)

	FindPaymentTermByID(ctx context.Context, paymentTermID string) (*domain.PaymentTerm, error)
	ListPaymentTerms(ctx context.Context, activeOnly bool) ([]domain.PaymentTerm, error)

	FindOperatingCategoryByID(ctx context.Context, categoryID string) (*domain.OperatingCategory, error)
	ListOperatingCategories(ctx context.Context, activeOnly bool) ([]domain.OperatingCategory, error)
}

// CatalogWriter defines write operations for catalog entries
type CatalogWriter interface {
	SaveVATRate(ctx context.Context, rate domain.VATRate) error
	UpdateVATRate(ctx context.Context, rate domain.VATRate) error
	SavePaymentTerm(ctx context.Context, term domain.PaymentTerm) error
	UpdatePaymentTerm(ctx context.Context, term domain.PaymentTerm) error
	SaveOperatingCategory(ctx context.Context, category domain.OperatingCategory) error
	UpdateOperatingCategory(ctx context.Context, category domain.OperatingCategory) error
}

// CatalogRepositoryFacade combines all catalog-related repository interfaces
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}

// FinancialAccountReader defines read operations for financial accounts.
// Balances are computed from movements on every read.
type FinancialAccountReader interface {
	FindFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)
	ListFinancialAccounts(ctx context.Context, activeOnly bool) ([]domain.FinancialAccount, error)
}

// FinancialAccountWriter defines write operations for financial accounts
type FinancialAccountWriter interface {
	SaveFinancialAccount(ctx context.Context, account domain.FinancialAccount) error
	UpdateFinancialAccount(ctx context.Context, account domain.FinancialAccount) error
}

// FinancialAccountRepositoryFacade combines all financial-account repository interfaces
type FinancialAccountRepositoryFacade interface {
	FinancialAccountReader
	FinancialAccountWriter
}
