package accounting

import (
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InstallmentDirectionFor maps a document type to the direction of the debt
// it creates.
func InstallmentDirectionFor(t domain.DocumentType) domain.InstallmentDirection {
	switch t {
	case domain.SalesInvoice, domain.PurchaseCreditNote:
		return domain.Receivable
	default:
		return domain.Payable
	}
}

// GenerateInstallments returns the installments a confirmed document owes.
// The current policy is a single installment for the whole total, due
// term.DaysToDue days after the document date. Nothing is generated when the
// total is not positive, no payment term is set, or the counterpart party is
// missing. The result carries no ids or audit fields; the caller stamps them.
func GenerateInstallments(doc domain.Document, term *domain.PaymentTerm) []domain.Installment {
	if doc.Status != domain.DocumentConfirmed {
		return nil
	}
	if !doc.TotalAmount.GreaterThan(decimal.Zero) || term == nil {
		return nil
	}
	partyID, ok := doc.CounterpartID()
	if !ok {
		return nil
	}

	direction := InstallmentDirectionFor(doc.DocumentType)
	var party domain.PartyRef = domain.SupplierRef{ID: partyID}
	if direction == domain.Receivable {
		party = domain.CustomerRef{ID: partyID}
	}

	return []domain.Installment{{
		DocumentID: doc.DocumentID,
		Party:      party,
		Direction:  direction,
		Status:     domain.InstallmentOpen,
		DueDate:    domain.DateOnly(doc.DocumentDate).AddDate(0, 0, term.DaysToDue),
		AmountDue:  doc.TotalAmount,
		AmountPaid: decimal.Zero,
	}}
}
