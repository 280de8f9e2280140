package mapping

import (
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/models"
)

// ToModelParty converts a domain Party to a model Party
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:     d.PartyID,
		Kind:        string(d.Kind),
		Name:        d.Name,
		FiscalCode:  nullable(d.FiscalCode),
		VATNumber:   nullable(d.VATNumber),
		Address:     nullable(d.Address),
		PostalCode:  nullable(d.PostalCode),
		City:        nullable(d.City),
		Province:    nullable(d.Province),
		Email:       nullable(d.Email),
		Phone:       nullable(d.Phone),
		Notes:       nullable(d.Notes),
		IsActive:    d.IsActive,
		JobTitle:    nullable(d.JobTitle),
		HireDate:    d.HireDate,
		EndDate:     d.EndDate,
		HourlyCost:  d.HourlyCost,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a model Party to a domain Party
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:     m.PartyID,
		Kind:        domain.PartyKind(m.Kind),
		Name:        m.Name,
		FiscalCode:  deref(m.FiscalCode),
		VATNumber:   deref(m.VATNumber),
		Address:     deref(m.Address),
		PostalCode:  deref(m.PostalCode),
		City:        deref(m.City),
		Province:    deref(m.Province),
		Email:       deref(m.Email),
		Phone:       deref(m.Phone),
		Notes:       deref(m.Notes),
		IsActive:    m.IsActive,
		JobTitle:    deref(m.JobTitle),
		HireDate:    m.HireDate,
		EndDate:     m.EndDate,
		HourlyCost:  m.HourlyCost,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
