package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type InstallmentDirection string

const (
	Receivable InstallmentDirection = "RECEIVABLE"
	Payable    InstallmentDirection = "PAYABLE"
)

type InstallmentStatus string

const (
	InstallmentOpen          InstallmentStatus = "OPEN"
	InstallmentPartiallyPaid InstallmentStatus = "PARTIALLY_PAID"
	InstallmentSettled       InstallmentStatus = "SETTLED"
	InstallmentVoided        InstallmentStatus = "VOIDED"
)

// IsValid reports whether s is a known installment status.
func (s InstallmentStatus) IsValid() bool {
	switch s {
	case InstallmentOpen, InstallmentPartiallyPaid, InstallmentSettled, InstallmentVoided:
		return true
	}
	return false
}

// PartyRef points an installment at either a customer or a supplier.
type PartyRef interface {
	PartyID() string
	PartyKind() PartyKind
	partyRef()
}

// CustomerRef references a party of kind CUSTOMER.
type CustomerRef struct{ ID string }

func (r CustomerRef) PartyID() string      { return r.ID }
func (r CustomerRef) PartyKind() PartyKind { return PartyCustomer }
func (CustomerRef) partyRef()              {}

// SupplierRef references a party of kind SUPPLIER.
type SupplierRef struct{ ID string }

func (r SupplierRef) PartyID() string      { return r.ID }
func (r SupplierRef) PartyKind() PartyKind { return PartySupplier }
func (SupplierRef) partyRef()              {}

// NewPartyRef rebuilds a reference from its stored kind and id.
func NewPartyRef(kind PartyKind, id string) (PartyRef, error) {
	switch kind {
	case PartyCustomer:
		return CustomerRef{ID: id}, nil
	case PartySupplier:
		return SupplierRef{ID: id}, nil
	}
	return nil, fmt.Errorf("party kind %q cannot own an installment", kind)
}

// Installment is a single amount owed by or to a party.
type Installment struct {
	InstallmentID string
	DocumentID    string
	Party         PartyRef
	Direction     InstallmentDirection
	Status        InstallmentStatus
	DueDate       time.Time
	AmountDue     decimal.Decimal
	AmountPaid    decimal.Decimal
	AuditFields
}

// DeriveInstallmentStatus maps amounts to a status:
// settled iff paid >= due, partially paid iff 0 < paid < due, open otherwise.
func DeriveInstallmentStatus(due, paid decimal.Decimal) InstallmentStatus {
	switch {
	case paid.GreaterThanOrEqual(due):
		return InstallmentSettled
	case paid.IsPositive():
		return InstallmentPartiallyPaid
	default:
		return InstallmentOpen
	}
}

// ApplyPaid stores the recomputed paid amount. Voided installments keep their
// status.
func (i *Installment) ApplyPaid(paid decimal.Decimal) {
	i.AmountPaid = paid
	if i.Status == InstallmentVoided {
		return
	}
	i.Status = DeriveInstallmentStatus(i.AmountDue, paid)
}

// Residual is the amount still to be collected or paid.
func (i Installment) Residual() decimal.Decimal {
	return i.AmountDue.Sub(i.AmountPaid)
}

// IsOutstanding reports whether the installment still counts as open debt.
func (i Installment) IsOutstanding() bool {
	return i.Status == InstallmentOpen || i.Status == InstallmentPartiallyPaid
}

// IsOverdue reports whether the due date is before the reference day and the
// installment is still outstanding.
func (i Installment) IsOverdue(asOf time.Time) bool {
	return i.IsOutstanding() && DateOnly(i.DueDate).Before(DateOnly(asOf))
}

// InstallmentFilter narrows installment listings.
type InstallmentFilter struct {
	DocumentID *string
	PartyID    *string
	Direction  *InstallmentDirection
	Statuses   []InstallmentStatus
	DueBefore  *time.Time
}
