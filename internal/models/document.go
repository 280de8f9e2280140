package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is a row of the documents table. Number is NULL until assigned.
type Document struct {
	DocumentID    string          `db:"document_id"`
	DocumentType  string          `db:"document_type"`
	Status        string          `db:"status"`
	Number        *string         `db:"document_number"`
	DocumentDate  time.Time       `db:"document_date"`
	CustomerID    *string         `db:"customer_id"`
	SupplierID    *string         `db:"supplier_id"`
	JobSiteID     *string         `db:"job_site_id"`
	PaymentTermID *string         `db:"payment_term_id"`
	Notes         string          `db:"notes"`
	TaxableAmount decimal.Decimal `db:"taxable_amount"`
	VATAmount     decimal.Decimal `db:"vat_amount"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AuditFields
}

// DocumentLine is a row of the document_lines table.
type DocumentLine struct {
	LineID        string          `db:"line_id"`
	DocumentID    string          `db:"document_id"`
	Position      int             `db:"position"`
	Description   string          `db:"description"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	VATRateID     string          `db:"vat_rate_id"`
	TaxableAmount decimal.Decimal `db:"taxable_amount"`
	VATAmount     decimal.Decimal `db:"vat_amount"`
}
