package mapping

import (
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/models"
)

// ToModelFinancialAccount converts a domain FinancialAccount to a model FinancialAccount
func ToModelFinancialAccount(d domain.FinancialAccount) models.FinancialAccount {
	return models.FinancialAccount{
		AccountID:   d.AccountID,
		Name:        d.Name,
		IBAN:        nullable(d.IBAN),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinancialAccount converts a model FinancialAccount to a domain FinancialAccount
func ToDomainFinancialAccount(m models.FinancialAccount) domain.FinancialAccount {
	return domain.FinancialAccount{
		AccountID:   m.AccountID,
		Name:        m.Name,
		IBAN:        deref(m.IBAN),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerMovement converts a domain LedgerMovement to a model LedgerMovement
func ToModelLedgerMovement(d domain.LedgerMovement) models.LedgerMovement {
	return models.LedgerMovement{
		MovementID:       d.MovementID,
		MovementDate:     domain.DateOnly(d.MovementDate),
		Description:      d.Description,
		Amount:           d.Amount,
		Direction:        string(d.Direction),
		AccountID:        d.AccountID,
		CategoryID:       d.CategoryID,
		PartyID:          d.PartyID,
		JobSiteID:        d.JobSiteID,
		InstallmentID:    d.InstallmentID,
		LinkedMovementID: d.LinkedMovementID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerMovement converts a model LedgerMovement to a domain LedgerMovement
func ToDomainLedgerMovement(m models.LedgerMovement) domain.LedgerMovement {
	return domain.LedgerMovement{
		MovementID:       m.MovementID,
		MovementDate:     m.MovementDate,
		Description:      m.Description,
		Amount:           m.Amount,
		Direction:        domain.MovementDirection(m.Direction),
		AccountID:        m.AccountID,
		CategoryID:       m.CategoryID,
		PartyID:          m.PartyID,
		JobSiteID:        m.JobSiteID,
		InstallmentID:    m.InstallmentID,
		LinkedMovementID: m.LinkedMovementID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
