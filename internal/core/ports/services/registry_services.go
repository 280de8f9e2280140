package services

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// PartySvc manages customers, suppliers and employees
type PartySvc interface {
	CreateParty(ctx context.Context, req dto.SavePartyRequest, actorID string) (*domain.Party, error)
	UpdateParty(ctx context.Context, partyID string, req dto.SavePartyRequest, actorID string) (*domain.Party, error)
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error)

	// ResolvePartyRef returns the party behind an installment reference,
	// checking that its kind matches.
	ResolvePartyRef(ctx context.Context, ref domain.PartyRef) (*domain.Party, error)
}

// JobSiteSvc manages job sites
type JobSiteSvc interface {
	CreateJobSite(ctx context.Context, req dto.SaveJobSiteRequest, actorID string) (*domain.JobSite, error)
	UpdateJobSite(ctx context.Context, jobSiteID string, req dto.SaveJobSiteRequest, actorID string) (*domain.JobSite, error)
	GetJobSiteByID(ctx context.Context, jobSiteID string) (*domain.JobSite, error)
	ListJobSites(ctx context.Context, params dto.ListJobSitesParams) ([]domain.JobSite, error)
}

// CatalogSvc manages VAT rates, payment terms and operating categories
type CatalogSvc interface {
	CreateVATRate(ctx context.Context, req dto.SaveVATRateRequest, actorID string) (*domain.VATRate, error)
	UpdateVATRate(ctx context.Context, vatRateID string, req dto.SaveVATRateRequest, actorID string) (*domain.VATRate, error)
	ListVATRates(ctx context.Context, activeOnly bool) ([]domain.VATRate, error)

	CreatePaymentTerm(ctx context.Context, req dto.SavePaymentTermRequest, actorID string) (*domain.PaymentTerm, error)
	UpdatePaymentTerm(ctx context.Context, paymentTermID string, req dto.SavePaymentTermRequest, actorID string) (*domain.PaymentTerm, error)
	ListPaymentTerms(ctx context.Context, activeOnly bool) ([]domain.PaymentTerm, error)

	CreateOperatingCategory(ctx context.Context, req dto.SaveOperatingCategoryRequest, actorID string) (*domain.OperatingCategory, error)
	UpdateOperatingCategory(ctx context.Context, categoryID string, req dto.SaveOperatingCategoryRequest, actorID string) (*domain.OperatingCategory, error)
	ListOperatingCategories(ctx context.Context, activeOnly bool) ([]domain.OperatingCategory, error)
}

// FinancialAccountSvc manages cash and bank accounts
type FinancialAccountSvc interface {
	CreateFinancialAccount(ctx context.Context, req dto.SaveFinancialAccountRequest, actorID string) (*domain.FinancialAccount, error)
	UpdateFinancialAccount(ctx context.Context, accountID string, req dto.SaveFinancialAccountRequest, actorID string) (*domain.FinancialAccount, error)
	GetFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)
	ListFinancialAccounts(ctx context.Context, activeOnly bool) ([]domain.FinancialAccount, error)
}

// RegistrySvcFacade combines all registry service interfaces
type RegistrySvcFacade interface {
	PartySvc
	JobSiteSvc
	CatalogSvc
	FinancialAccountSvc
}
