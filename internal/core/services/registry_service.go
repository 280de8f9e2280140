package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
	"github.com/SscSPs/biz_management_app/internal/utils/normalize"
)

var maxVATPercentage = decimal.NewFromInt(100)

// registryService implements the data-entry side: parties, job sites,
// catalogs and financial accounts.
type registryService struct {
	BaseService
	partyRepo   portsrepo.PartyRepositoryFacade
	jobSiteRepo portsrepo.JobSiteRepositoryFacade
	catalogRepo portsrepo.CatalogRepositoryFacade
	accountRepo portsrepo.FinancialAccountRepositoryFacade
	now         func() time.Time
}

// RegistryServiceOption is a functional option for configuring the registry service
type RegistryServiceOption func(*registryService)

// WithRegistryClock overrides the clock used for audit fields.
func WithRegistryClock(now func() time.Time) RegistryServiceOption {
	return func(s *registryService) {
		s.now = now
	}
}

// NewRegistryService creates a new registry service with the provided options
func NewRegistryService(
	partyRepo portsrepo.PartyRepositoryFacade,
	jobSiteRepo portsrepo.JobSiteRepositoryFacade,
	catalogRepo portsrepo.CatalogRepositoryFacade,
	accountRepo portsrepo.FinancialAccountRepositoryFacade,
	options ...RegistryServiceOption,
) portssvc.RegistrySvcFacade {
	svc := &registryService{
		partyRepo:   partyRepo,
		jobSiteRepo: jobSiteRepo,
		catalogRepo: catalogRepo,
		accountRepo: accountRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// --- Parties ---

func (s *registryService) CreateParty(ctx context.Context, req dto.SavePartyRequest, actorID string) (*domain.Party, error) {
	party := domain.Party{
		PartyID:     uuid.NewString(),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := applyPartyRequest(&party, req); err != nil {
		return nil, err
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("party_id", party.PartyID))
		return nil, err
	}

	s.LogInfo(ctx, "Party created",
		slog.String("party_id", party.PartyID),
		slog.String("kind", string(party.Kind)))
	return &party, nil
}

func (s *registryService) UpdateParty(ctx context.Context, partyID string, req dto.SavePartyRequest, actorID string) (*domain.Party, error) {
	existing, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	party := *existing
	if err := applyPartyRequest(&party, req); err != nil {
		return nil, err
	}
	party.Touch(actorID, s.now())

	if err := s.partyRepo.UpdateParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to update party", slog.String("party_id", partyID))
		return nil, err
	}
	return &party, nil
}

func (s *registryService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

func (s *registryService) ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error) {
	parties, err := s.partyRepo.ListParties(ctx, params.Kind, strings.TrimSpace(params.Search), params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties")
		return nil, err
	}
	if parties == nil {
		return []domain.Party{}, nil
	}
	return parties, nil
}

func (s *registryService) ResolvePartyRef(ctx context.Context, ref domain.PartyRef) (*domain.Party, error) {
	if ref == nil {
		return nil, apperrors.NewValidationError("party", "party reference is empty")
	}
	party, err := s.partyRepo.FindPartyByID(ctx, ref.PartyID())
	if err != nil {
		return nil, err
	}
	if party.Kind != ref.PartyKind() {
		return nil, apperrors.NewValidationError("party", fmt.Sprintf("party %s is a %s, not a %s", party.PartyID, party.Kind, ref.PartyKind()))
	}
	return party, nil
}

func applyPartyRequest(p *domain.Party, req dto.SavePartyRequest) error {
	if !req.Kind.IsValid() {
		return apperrors.NewValidationError("kind", fmt.Sprintf("unknown party kind %q", req.Kind))
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	hire, end := dto.DatePtr(req.HireDate), dto.DatePtr(req.EndDate)
	if hire != nil && end != nil && end.Before(*hire) {
		return apperrors.NewValidationError("endDate", "end date is before hire date")
	}
	if req.HourlyCost != nil && req.HourlyCost.IsNegative() {
		return apperrors.NewValidationError("hourlyCost", "hourly cost cannot be negative")
	}

	p.Kind = req.Kind
	p.Name = req.Name
	p.FiscalCode = req.FiscalCode
	p.VATNumber = req.VATNumber
	p.Address = req.Address
	p.PostalCode = req.PostalCode
	p.City = req.City
	p.Province = req.Province
	p.Email = req.Email
	p.Phone = strings.TrimSpace(req.Phone)
	p.Notes = strings.TrimSpace(req.Notes)
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.JobTitle = req.JobTitle
	p.HireDate = hire
	p.EndDate = end
	p.HourlyCost = req.HourlyCost
	p.Normalize()
	return nil
}

// --- Job sites ---

func (s *registryService) CreateJobSite(ctx context.Context, req dto.SaveJobSiteRequest, actorID string) (*domain.JobSite, error) {
	jobSite := domain.JobSite{
		JobSiteID:   uuid.NewString(),
		Status:      domain.JobSiteDraft,
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.applyJobSiteRequest(ctx, &jobSite, req); err != nil {
		return nil, err
	}

	if err := s.jobSiteRepo.SaveJobSite(ctx, jobSite); err != nil {
		s.LogError(ctx, err, "Failed to save job site", slog.String("code", jobSite.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Job site created",
		slog.String("job_site_id", jobSite.JobSiteID),
		slog.String("code", jobSite.Code))
	return &jobSite, nil
}

func (s *registryService) UpdateJobSite(ctx context.Context, jobSiteID string, req dto.SaveJobSiteRequest, actorID string) (*domain.JobSite, error) {
	existing, err := s.jobSiteRepo.FindJobSiteByID(ctx, jobSiteID)
	if err != nil {
		return nil, err
	}

	jobSite := *existing
	if err := s.applyJobSiteRequest(ctx, &jobSite, req); err != nil {
		return nil, err
	}
	jobSite.Touch(actorID, s.now())

	if err := s.jobSiteRepo.UpdateJobSite(ctx, jobSite); err != nil {
		s.LogError(ctx, err, "Failed to update job site", slog.String("job_site_id", jobSiteID))
		return nil, err
	}
	return &jobSite, nil
}

func (s *registryService) GetJobSiteByID(ctx context.Context, jobSiteID string) (*domain.JobSite, error) {
	return s.jobSiteRepo.FindJobSiteByID(ctx, jobSiteID)
}

func (s *registryService) ListJobSites(ctx context.Context, params dto.ListJobSitesParams) ([]domain.JobSite, error) {
	jobSites, err := s.jobSiteRepo.ListJobSites(ctx, blankToNil(params.CustomerID), params.Status, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list job sites")
		return nil, err
	}
	if jobSites == nil {
		return []domain.JobSite{}, nil
	}
	return jobSites, nil
}

func (s *registryService) applyJobSiteRequest(ctx context.Context, j *domain.JobSite, req dto.SaveJobSiteRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return apperrors.NewValidationError("code", "code is required")
	}
	customer, err := s.partyRepo.FindPartyByID(ctx, req.CustomerID)
	if err != nil {
		return asFieldError(err, "customerID", "customer not found")
	}
	if customer.Kind != domain.PartyCustomer {
		return apperrors.NewValidationError("customerID", "a job site belongs to a customer")
	}

	start := dto.DatePtr(req.StartDate)
	expectedEnd := dto.DatePtr(req.ExpectedEndDate)
	closed := dto.DatePtr(req.ActualCloseDate)
	if start != nil && expectedEnd != nil && expectedEnd.Before(*start) {
		return apperrors.NewValidationError("expectedEndDate", "expected end date is before start date")
	}
	if start != nil && closed != nil && closed.Before(*start) {
		return apperrors.NewValidationError("actualCloseDate", "close date is before start date")
	}

	j.Code = req.Code
	j.Name = req.Name
	j.CustomerID = customer.PartyID
	if req.Status != "" {
		j.Status = req.Status
	}
	j.Address = req.Address
	j.City = req.City
	j.StartDate = start
	j.ExpectedEndDate = expectedEnd
	j.ActualCloseDate = closed
	j.Description = strings.TrimSpace(req.Description)
	j.Normalize()
	return nil
}

// --- Catalogs ---

func (s *registryService) CreateVATRate(ctx context.Context, req dto.SaveVATRateRequest, actorID string) (*domain.VATRate, error) {
	if err := validateVATRate(req); err != nil {
		return nil, err
	}
	rate := domain.VATRate{
		VATRateID:   uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		Percentage:  req.Percentage,
		IsActive:    boolOr(req.IsActive, true),
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.catalogRepo.SaveVATRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save VAT rate", slog.String("description", rate.Description))
		return nil, err
	}
	return &rate, nil
}

func (s *registryService) UpdateVATRate(ctx context.Context, vatRateID string, req dto.SaveVATRateRequest, actorID string) (*domain.VATRate, error) {
	if err := validateVATRate(req); err != nil {
		return nil, err
	}
	rate, err := s.catalogRepo.FindVATRateByID(ctx, vatRateID)
	if err != nil {
		return nil, err
	}
	rate.Description = strings.TrimSpace(req.Description)
	rate.Percentage = req.Percentage
	rate.IsActive = boolOr(req.IsActive, rate.IsActive)
	rate.Touch(actorID, s.now())
	if err := s.catalogRepo.UpdateVATRate(ctx, *rate); err != nil {
		s.LogError(ctx, err, "Failed to update VAT rate", slog.String("vat_rate_id", vatRateID))
		return nil, err
	}
	return rate, nil
}

func (s *registryService) ListVATRates(ctx context.Context, activeOnly bool) ([]domain.VATRate, error) {
	rates, err := s.catalogRepo.ListVATRates(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list VAT rates")
		return nil, err
	}
	if rates == nil {
		return []domain.VATRate{}, nil
	}
	return rates, nil
}

func validateVATRate(req dto.SaveVATRateRequest) error {
	if req.Percentage.IsNegative() || req.Percentage.GreaterThan(maxVATPercentage) {
		return apperrors.NewValidationError("percentage", "percentage must be between 0 and 100")
	}
	return nil
}

func (s *registryService) CreatePaymentTerm(ctx context.Context, req dto.SavePaymentTermRequest, actorID string) (*domain.PaymentTerm, error) {
	if req.DaysToDue < 0 {
		return nil, apperrors.NewValidationError("daysToDue", "days to due cannot be negative")
	}
	term := domain.PaymentTerm{
		PaymentTermID: uuid.NewString(),
		Description:   strings.TrimSpace(req.Description),
		DaysToDue:     req.DaysToDue,
		IsActive:      boolOr(req.IsActive, true),
		AuditFields:   domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.catalogRepo.SavePaymentTerm(ctx, term); err != nil {
		s.LogError(ctx, err, "Failed to save payment term", slog.String("description", term.Description))
		return nil, err
	}
	return &term, nil
}

func (s *registryService) UpdatePaymentTerm(ctx context.Context, paymentTermID string, req dto.SavePaymentTermRequest, actorID string) (*domain.PaymentTerm, error) {
	if req.DaysToDue < 0 {
		return nil, apperrors.NewValidationError("daysToDue", "days to due cannot be negative")
	}
	term, err := s.catalogRepo.FindPaymentTermByID(ctx, paymentTermID)
	if err != nil {
		return nil, err
	}
	term.Description = strings.TrimSpace(req.Description)
	term.DaysToDue = req.DaysToDue
	term.IsActive = boolOr(req.IsActive, term.IsActive)
	term.Touch(actorID, s.now())
	if err := s.catalogRepo.UpdatePaymentTerm(ctx, *term); err != nil {
		s.LogError(ctx, err, "Failed to update payment term", slog.String("payment_term_id", paymentTermID))
		return nil, err
	}
	return term, nil
}

func (s *registryService) ListPaymentTerms(ctx context.Context, activeOnly bool) ([]domain.PaymentTerm, error) {
	terms, err := s.catalogRepo.ListPaymentTerms(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment terms")
		return nil, err
	}
	if terms == nil {
		return []domain.PaymentTerm{}, nil
	}
	return terms, nil
}

func (s *registryService) CreateOperatingCategory(ctx context.Context, req dto.SaveOperatingCategoryRequest, actorID string) (*domain.OperatingCategory, error) {
	if req.Kind != domain.CategoryCost && req.Kind != domain.CategoryRevenue {
		return nil, apperrors.NewValidationError("kind", "kind must be COST or REVENUE")
	}
	category := domain.OperatingCategory{
		CategoryID:  uuid.NewString(),
		Name:        normalize.Upper(req.Name),
		Kind:        req.Kind,
		IsActive:    boolOr(req.IsActive, true),
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.catalogRepo.SaveOperatingCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save operating category", slog.String("name", category.Name))
		return nil, err
	}
	return &category, nil
}

func (s *registryService) UpdateOperatingCategory(ctx context.Context, categoryID string, req dto.SaveOperatingCategoryRequest, actorID string) (*domain.OperatingCategory, error) {
	if req.Kind != domain.CategoryCost && req.Kind != domain.CategoryRevenue {
		return nil, apperrors.NewValidationError("kind", "kind must be COST or REVENUE")
	}
	category, err := s.catalogRepo.FindOperatingCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	category.Name = normalize.Upper(req.Name)
	category.Kind = req.Kind
	category.IsActive = boolOr(req.IsActive, category.IsActive)
	category.Touch(actorID, s.now())
	if err := s.catalogRepo.UpdateOperatingCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update operating category", slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *registryService) ListOperatingCategories(ctx context.Context, activeOnly bool) ([]domain.OperatingCategory, error) {
	categories, err := s.catalogRepo.ListOperatingCategories(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list operating categories")
		return nil, err
	}
	if categories == nil {
		return []domain.OperatingCategory{}, nil
	}
	return categories, nil
}

// --- Financial accounts ---

func (s *registryService) CreateFinancialAccount(ctx context.Context, req dto.SaveFinancialAccountRequest, actorID string) (*domain.FinancialAccount, error) {
	account := domain.FinancialAccount{
		AccountID:   uuid.NewString(),
		Name:        normalize.Upper(req.Name),
		IBAN:        normalizeIBAN(req.IBAN),
		IsActive:    boolOr(req.IsActive, true),
		Balance:     decimal.Zero,
		AuditFields: domain.NewAuditFields(actorID, s.now()),
	}
	if err := s.accountRepo.SaveFinancialAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save financial account", slog.String("name", account.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Financial account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *registryService) UpdateFinancialAccount(ctx context.Context, accountID string, req dto.SaveFinancialAccountRequest, actorID string) (*domain.FinancialAccount, error) {
	account, err := s.accountRepo.FindFinancialAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Name = normalize.Upper(req.Name)
	account.IBAN = normalizeIBAN(req.IBAN)
	account.IsActive = boolOr(req.IsActive, account.IsActive)
	account.Touch(actorID, s.now())
	if err := s.accountRepo.UpdateFinancialAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update financial account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *registryService) GetFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	account, err := s.accountRepo.FindFinancialAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find financial account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *registryService) ListFinancialAccounts(ctx context.Context, activeOnly bool) ([]domain.FinancialAccount, error) {
	accounts, err := s.accountRepo.ListFinancialAccounts(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list financial accounts")
		return nil, err
	}
	if accounts == nil {
		return []domain.FinancialAccount{}, nil
	}
	return accounts, nil
}

func normalizeIBAN(iban string) string {
	return normalize.Upper(strings.Join(strings.Fields(iban), ""))
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
