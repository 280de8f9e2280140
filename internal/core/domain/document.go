package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies invoices and credit notes on both sides.
type DocumentType string

const (
	SalesInvoice       DocumentType = "SALES_INVOICE"
	SalesCreditNote    DocumentType = "SALES_CREDIT_NOTE"
	PurchaseInvoice    DocumentType = "PURCHASE_INVOICE"
	PurchaseCreditNote DocumentType = "PURCHASE_CREDIT_NOTE"
)

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	switch t {
	case SalesInvoice, SalesCreditNote, PurchaseInvoice, PurchaseCreditNote:
		return true
	}
	return false
}

// IsSales reports whether the document is issued by us and therefore numbered
// by the system.
func (t DocumentType) IsSales() bool {
	return t == SalesInvoice || t == SalesCreditNote
}

// IsCreditNote reports whether negative quantities and prices are allowed.
func (t DocumentType) IsCreditNote() bool {
	return t == SalesCreditNote || t == PurchaseCreditNote
}

// NumberPrefix returns the prefix of system-assigned numbers, or "" for types
// that keep an external number.
func (t DocumentType) NumberPrefix() string {
	switch t {
	case SalesInvoice:
		return "FT"
	case SalesCreditNote:
		return "NC"
	}
	return ""
}

type DocumentStatus string

const (
	DocumentDraft     DocumentStatus = "DRAFT"
	DocumentConfirmed DocumentStatus = "CONFIRMED"
	DocumentCancelled DocumentStatus = "CANCELLED"
)

// IsValid reports whether s is a known document status.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentDraft, DocumentConfirmed, DocumentCancelled:
		return true
	}
	return false
}

// Document is the header of an invoice or credit note. TaxableAmount,
// VATAmount and TotalAmount are always derived from the persisted lines.
type Document struct {
	DocumentID    string          `json:"documentID"`
	DocumentType  DocumentType    `json:"documentType"`
	Status        DocumentStatus  `json:"status"`
	Number        string          `json:"number"`
	DocumentDate  time.Time       `json:"documentDate"`
	CustomerID    *string         `json:"customerID,omitempty"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	JobSiteID     *string         `json:"jobSiteID,omitempty"`
	PaymentTermID *string         `json:"paymentTermID,omitempty"`
	Notes         string          `json:"notes"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Lines         []DocumentLine  `json:"lines,omitempty"`
	AuditFields
}

// Year returns the year the document number is scoped to.
func (d Document) Year() int {
	return d.DocumentDate.Year()
}

// CounterpartID returns the party an installment of this document is owed
// by or to, and whether it is set.
func (d Document) CounterpartID() (string, bool) {
	var id *string
	switch d.DocumentType {
	case SalesInvoice, PurchaseCreditNote:
		id = d.CustomerID
	case PurchaseInvoice, SalesCreditNote:
		id = d.SupplierID
	}
	if id == nil || *id == "" {
		return "", false
	}
	return *id, true
}

// DocumentLine is one row of a document. TaxableAmount and VATAmount are
// recomputed on every save.
type DocumentLine struct {
	LineID        string          `json:"lineID"`
	DocumentID    string          `json:"documentID"`
	Position      int             `json:"position"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	VATRateID     string          `json:"vatRateID"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
}

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	DocumentType *DocumentType
	Status       *DocumentStatus
	PartyID      *string
	JobSiteID    *string
	Year         *int
}
