package mapping

import (
	"fmt"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/models"
)

// ToModelInstallment converts a domain Installment to a model Installment.
// It fails when the installment has no party.
func ToModelInstallment(d domain.Installment) (models.Installment, error) {
	if d.Party == nil {
		return models.Installment{}, fmt.Errorf("installment %s has no party", d.InstallmentID)
	}
	return models.Installment{
		InstallmentID: d.InstallmentID,
		DocumentID:    d.DocumentID,
		PartyKind:     string(d.Party.PartyKind()),
		PartyID:       d.Party.PartyID(),
		Direction:     string(d.Direction),
		Status:        string(d.Status),
		DueDate:       domain.DateOnly(d.DueDate),
		AmountDue:     d.AmountDue,
		AmountPaid:    d.AmountPaid,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) (domain.Installment, error) {
	party, err := domain.NewPartyRef(domain.PartyKind(m.PartyKind), m.PartyID)
	if err != nil {
		return domain.Installment{}, fmt.Errorf("installment %s: %w", m.InstallmentID, err)
	}
	return domain.Installment{
		InstallmentID: m.InstallmentID,
		DocumentID:    m.DocumentID,
		Party:         party,
		Direction:     domain.InstallmentDirection(m.Direction),
		Status:        domain.InstallmentStatus(m.Status),
		DueDate:       m.DueDate,
		AmountDue:     m.AmountDue,
		AmountPaid:    m.AmountPaid,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainInstallmentSlice converts a slice of model Installments
func ToDomainInstallmentSlice(ms []models.Installment) ([]domain.Installment, error) {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		d, err := ToDomainInstallment(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
