package mapping

import (
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:    d.DocumentID,
		DocumentType:  string(d.DocumentType),
		Status:        string(d.Status),
		Number:        nullable(d.Number),
		DocumentDate:  domain.DateOnly(d.DocumentDate),
		CustomerID:    d.CustomerID,
		SupplierID:    d.SupplierID,
		JobSiteID:     d.JobSiteID,
		PaymentTermID: d.PaymentTermID,
		Notes:         d.Notes,
		TaxableAmount: d.TaxableAmount,
		VATAmount:     d.VATAmount,
		TotalAmount:   d.TotalAmount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:    m.DocumentID,
		DocumentType:  domain.DocumentType(m.DocumentType),
		Status:        domain.DocumentStatus(m.Status),
		Number:        deref(m.Number),
		DocumentDate:  m.DocumentDate,
		CustomerID:    m.CustomerID,
		SupplierID:    m.SupplierID,
		JobSiteID:     m.JobSiteID,
		PaymentTermID: m.PaymentTermID,
		Notes:         m.Notes,
		TaxableAmount: m.TaxableAmount,
		VATAmount:     m.VATAmount,
		TotalAmount:   m.TotalAmount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDocumentLine converts a domain DocumentLine to a model DocumentLine
func ToModelDocumentLine(d domain.DocumentLine) models.DocumentLine {
	return models.DocumentLine{
		LineID:        d.LineID,
		DocumentID:    d.DocumentID,
		Position:      d.Position,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		VATRateID:     d.VATRateID,
		TaxableAmount: d.TaxableAmount,
		VATAmount:     d.VATAmount,
	}
}

// ToDomainDocumentLine converts a model DocumentLine to a domain DocumentLine
func ToDomainDocumentLine(m models.DocumentLine) domain.DocumentLine {
	return domain.DocumentLine{
		LineID:        m.LineID,
		DocumentID:    m.DocumentID,
		Position:      m.Position,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		VATRateID:     m.VATRateID,
		TaxableAmount: m.TaxableAmount,
		VATAmount:     m.VATAmount,
	}
}

// ToDomainDocumentLineSlice converts a slice of model lines to domain lines
func ToDomainDocumentLineSlice(ms []models.DocumentLine) []domain.DocumentLine {
	ds := make([]domain.DocumentLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocumentLine(m)
	}
	return ds
}
