package services_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

var fixedNow = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fixture seeds a store with the registry rows most tests need.
type fixture struct {
	store      *memStore
	actorID    string
	customerID string
	supplierID string
	vat22ID    string
	vatOldID   string
	term30ID   string
	termOffID  string
	bankID     string
	cashID     string
	closedID   string
}

func newFixture() *fixture {
	f := &fixture{
		store:      newMemStore(),
		actorID:    uuid.NewString(),
		customerID: uuid.NewString(),
		supplierID: uuid.NewString(),
		vat22ID:    uuid.NewString(),
		vatOldID:   uuid.NewString(),
		term30ID:   uuid.NewString(),
		termOffID:  uuid.NewString(),
		bankID:     uuid.NewString(),
		cashID:     uuid.NewString(),
		closedID:   uuid.NewString(),
	}
	audit := domain.NewAuditFields(f.actorID, fixedNow)
	s := f.store
	s.parties[f.customerID] = domain.Party{PartyID: f.customerID, Kind: domain.PartyCustomer, Name: "ROSSI SPA", IsActive: true, AuditFields: audit}
	s.parties[f.supplierID] = domain.Party{PartyID: f.supplierID, Kind: domain.PartySupplier, Name: "EDILFORNITURE SRL", IsActive: true, AuditFields: audit}
	s.vatRates[f.vat22ID] = domain.VATRate{VATRateID: f.vat22ID, Description: "IVA 22%", Percentage: decimal.NewFromInt(22), IsActive: true, AuditFields: audit}
	s.vatRates[f.vatOldID] = domain.VATRate{VATRateID: f.vatOldID, Description: "IVA 20%", Percentage: decimal.NewFromInt(20), IsActive: false, AuditFields: audit}
	s.terms[f.term30ID] = domain.PaymentTerm{PaymentTermID: f.term30ID, Description: "30 GG DF", DaysToDue: 30, IsActive: true, AuditFields: audit}
	s.terms[f.termOffID] = domain.PaymentTerm{PaymentTermID: f.termOffID, Description: "RIBA 120", DaysToDue: 120, IsActive: false, AuditFields: audit}
	s.accounts[f.bankID] = domain.FinancialAccount{AccountID: f.bankID, Name: "BANCA", IsActive: true, AuditFields: audit}
	s.accounts[f.cashID] = domain.FinancialAccount{AccountID: f.cashID, Name: "CASSA", IsActive: true, AuditFields: audit}
	s.accounts[f.closedID] = domain.FinancialAccount{AccountID: f.closedID, Name: "VECCHIO CONTO", IsActive: false, AuditFields: audit}
	return f
}

func date(s string) dto.Date {
	d, err := dto.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

// salesInvoice builds the request for 2 x 500.00 at 22% dated 2025-01-31, 30 days.
func (f *fixture) salesInvoice(status domain.DocumentStatus) dto.SaveDocumentRequest {
	return dto.SaveDocumentRequest{
		DocumentType:  domain.SalesInvoice,
		Status:        status,
		DocumentDate:  date("2025-01-31"),
		CustomerID:    strPtr(f.customerID),
		PaymentTermID: strPtr(f.term30ID),
		Lines: []dto.DocumentLineRequest{
			{Description: "posa pavimento", Quantity: dec("2"), UnitPrice: dec("500.00"), VATRateID: f.vat22ID},
		},
	}
}

// activeInstallments returns the non-voided installments of a document.
func (f *fixture) activeInstallments(documentID string) []domain.Installment {
	var out []domain.Installment
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, inst := range f.store.installments {
		if inst.DocumentID == documentID && inst.Status != domain.InstallmentVoided {
			out = append(out, inst)
		}
	}
	return out
}
