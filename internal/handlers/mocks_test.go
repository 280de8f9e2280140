package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Document), next, args.Error(2)
}
func (m *MockDocumentService) CreateDocument(ctx context.Context, req dto.SaveDocumentRequest, actorID string) (*domain.Document, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) UpdateDocument(ctx context.Context, documentID string, req dto.SaveDocumentRequest, actorID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) ChangeDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, actorID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, status, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) DeleteDocument(ctx context.Context, documentID string, actorID string) error {
	args := m.Called(ctx, documentID, actorID)
	return args.Error(0)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetMovementByID(ctx context.Context, movementID string) (*domain.LedgerMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerMovement), args.Error(1)
}
func (m *MockLedgerService) ListMovementsByAccount(ctx context.Context, accountID string, params dto.PageParams) ([]domain.LedgerMovement, *string, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.LedgerMovement), next, args.Error(2)
}
func (m *MockLedgerService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actorID string) (*domain.LedgerMovement, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerMovement), args.Error(1)
}
func (m *MockLedgerService) UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, actorID string) (*domain.LedgerMovement, error) {
	args := m.Called(ctx, movementID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerMovement), args.Error(1)
}
func (m *MockLedgerService) DeleteMovement(ctx context.Context, movementID string, actorID string) error {
	args := m.Called(ctx, movementID, actorID)
	return args.Error(0)
}
func (m *MockLedgerService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, actorID string) (*domain.LedgerMovement, *domain.LedgerMovement, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.LedgerMovement), args.Get(1).(*domain.LedgerMovement), args.Error(2)
}
func (m *MockLedgerService) GetInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}
func (m *MockLedgerService) ListInstallments(ctx context.Context, params dto.ListInstallmentsParams) ([]domain.Installment, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Installment), next, args.Error(2)
}
func (m *MockLedgerService) ListInstallmentsByDocument(ctx context.Context, documentID string) ([]domain.Installment, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock RegistryService ---
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) CreateParty(ctx context.Context, req dto.SavePartyRequest, actorID string) (*domain.Party, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockRegistryService) UpdateParty(ctx context.Context, partyID string, req dto.SavePartyRequest, actorID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockRegistryService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockRegistryService) ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}
func (m *MockRegistryService) ResolvePartyRef(ctx context.Context, ref domain.PartyRef) (*domain.Party, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}
func (m *MockRegistryService) CreateJobSite(ctx context.Context, req dto.SaveJobSiteRequest, actorID string) (*domain.JobSite, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSite), args.Error(1)
}
func (m *MockRegistryService) UpdateJobSite(ctx context.Context, jobSiteID string, req dto.SaveJobSiteRequest, actorID string) (*domain.JobSite, error) {
	args := m.Called(ctx, jobSiteID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSite), args.Error(1)
}
func (m *MockRegistryService) GetJobSiteByID(ctx context.Context, jobSiteID string) (*domain.JobSite, error) {
	args := m.Called(ctx, jobSiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSite), args.Error(1)
}
func (m *MockRegistryService) ListJobSites(ctx context.Context, params dto.ListJobSitesParams) ([]domain.JobSite, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobSite), args.Error(1)
}
func (m *MockRegistryService) CreateVATRate(ctx context.Context, req dto.SaveVATRateRequest, actorID string) (*domain.VATRate, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATRate), args.Error(1)
}
func (m *MockRegistryService) UpdateVATRate(ctx context.Context, vatRateID string, req dto.SaveVATRateRequest, actorID string) (*domain.VATRate, error) {
	args := m.Called(ctx, vatRateID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATRate), args.Error(1)
}
func (m *MockRegistryService) ListVATRates(ctx context.Context, activeOnly bool) ([]domain.VATRate, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATRate), args.Error(1)
}
func (m *MockRegistryService) CreatePaymentTerm(ctx context.Context, req dto.SavePaymentTermRequest, actorID string) (*domain.PaymentTerm, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTerm), args.Error(1)
}
func (m *MockRegistryService) UpdatePaymentTerm(ctx context.Context, paymentTermID string, req dto.SavePaymentTermRequest, actorID string) (*domain.PaymentTerm, error) {
	args := m.Called(ctx, paymentTermID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTerm), args.Error(1)
}
func (m *MockRegistryService) ListPaymentTerms(ctx context.Context, activeOnly bool) ([]domain.PaymentTerm, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentTerm), args.Error(1)
}
func (m *MockRegistryService) CreateOperatingCategory(ctx context.Context, req dto.SaveOperatingCategoryRequest, actorID string) (*domain.OperatingCategory, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingCategory), args.Error(1)
}
func (m *MockRegistryService) UpdateOperatingCategory(ctx context.Context, categoryID string, req dto.SaveOperatingCategoryRequest, actorID string) (*domain.OperatingCategory, error) {
	args := m.Called(ctx, categoryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingCategory), args.Error(1)
}
func (m *MockRegistryService) ListOperatingCategories(ctx context.Context, activeOnly bool) ([]domain.OperatingCategory, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperatingCategory), args.Error(1)
}
func (m *MockRegistryService) CreateFinancialAccount(ctx context.Context, req dto.SaveFinancialAccountRequest, actorID string) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialAccount), args.Error(1)
}
func (m *MockRegistryService) UpdateFinancialAccount(ctx context.Context, accountID string, req dto.SaveFinancialAccountRequest, actorID string) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialAccount), args.Error(1)
}
func (m *MockRegistryService) GetFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialAccount), args.Error(1)
}
func (m *MockRegistryService) ListFinancialAccounts(ctx context.Context, activeOnly bool) ([]domain.FinancialAccount, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialAccount), args.Error(1)
}

var _ portssvc.RegistrySvcFacade = (*MockRegistryService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Dashboard(ctx context.Context, params dto.DashboardParams) (*domain.Dashboard, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
