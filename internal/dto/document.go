package dto

import (
	"time"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest is one line of a document save batch.
type DocumentLineRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRateID   string          `json:"vatRateID" binding:"required"`
}

// SaveDocumentRequest creates or fully replaces a document with its lines.
// Number is only read for purchase documents; sales numbers are assigned on
// confirmation.
type SaveDocumentRequest struct {
	DocumentType  domain.DocumentType   `json:"documentType" binding:"required,oneof=SALES_INVOICE SALES_CREDIT_NOTE PURCHASE_INVOICE PURCHASE_CREDIT_NOTE"`
	Status        domain.DocumentStatus `json:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
	Number        string                `json:"number" binding:"max=50"`
	DocumentDate  Date                  `json:"documentDate"`
	CustomerID    *string               `json:"customerID"`
	SupplierID    *string               `json:"supplierID"`
	JobSiteID     *string               `json:"jobSiteID"`
	PaymentTermID *string               `json:"paymentTermID"`
	Notes         string                `json:"notes" binding:"max=2000"`
	Lines         []DocumentLineRequest `json:"lines" binding:"dive"`
}

// ChangeDocumentStatusRequest moves a document through its lifecycle.
type ChangeDocumentStatusRequest struct {
	Status domain.DocumentStatus `json:"status" binding:"required,oneof=DRAFT CONFIRMED CANCELLED"`
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	DocumentType *domain.DocumentType   `form:"documentType" binding:"omitempty,oneof=SALES_INVOICE SALES_CREDIT_NOTE PURCHASE_INVOICE PURCHASE_CREDIT_NOTE"`
	Status       *domain.DocumentStatus `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
	PartyID      *string                `form:"partyID"`
	JobSiteID    *string                `form:"jobSiteID"`
	Year         *int                   `form:"year" binding:"omitempty,min=1900,max=9999"`
	PageParams
}

// DocumentLineResponse defines the data returned for a document line.
type DocumentLineResponse struct {
	LineID        string          `json:"lineID"`
	Position      int             `json:"position"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	VATRateID     string          `json:"vatRateID"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID    string                 `json:"documentID"`
	DocumentType  domain.DocumentType    `json:"documentType"`
	Status        domain.DocumentStatus  `json:"status"`
	Number        string                 `json:"number"`
	DocumentDate  Date                   `json:"documentDate"`
	CustomerID    *string                `json:"customerID,omitempty"`
	SupplierID    *string                `json:"supplierID,omitempty"`
	JobSiteID     *string                `json:"jobSiteID,omitempty"`
	PaymentTermID *string                `json:"paymentTermID,omitempty"`
	Notes         string                 `json:"notes"`
	TaxableAmount decimal.Decimal        `json:"taxableAmount"`
	VATAmount     decimal.Decimal        `json:"vatAmount"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	Lines         []DocumentLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// ListDocumentsResponse wraps a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:    doc.DocumentID,
		DocumentType:  doc.DocumentType,
		Status:        doc.Status,
		Number:        doc.Number,
		DocumentDate:  NewDate(doc.DocumentDate),
		CustomerID:    doc.CustomerID,
		SupplierID:    doc.SupplierID,
		JobSiteID:     doc.JobSiteID,
		PaymentTermID: doc.PaymentTermID,
		Notes:         doc.Notes,
		TaxableAmount: doc.TaxableAmount,
		VATAmount:     doc.VATAmount,
		TotalAmount:   doc.TotalAmount,
		CreatedAt:     doc.CreatedAt,
		CreatedBy:     doc.CreatedBy,
		LastUpdatedAt: doc.LastUpdatedAt,
		LastUpdatedBy: doc.LastUpdatedBy,
	}
	if len(doc.Lines) > 0 {
		resp.Lines = make([]DocumentLineResponse, len(doc.Lines))
		for i, l := range doc.Lines {
			resp.Lines[i] = DocumentLineResponse{
				LineID:        l.LineID,
				Position:      l.Position,
				Description:   l.Description,
				Quantity:      l.Quantity,
				UnitPrice:     l.UnitPrice,
				VATRateID:     l.VATRateID,
				TaxableAmount: l.TaxableAmount,
				VATAmount:     l.VATAmount,
			}
		}
	}
	return resp
}

// ToListDocumentsResponse converts a page of documents.
func ToListDocumentsResponse(docs []domain.Document, nextToken *string) ListDocumentsResponse {
	res := ListDocumentsResponse{Documents: make([]DocumentResponse, len(docs)), NextToken: nextToken}
	for i := range docs {
		res.Documents[i] = ToDocumentResponse(&docs[i])
	}
	return res
}
