package domain

import "github.com/shopspring/decimal"

// VATRate is a named VAT percentage applied to document lines.
type VATRate struct {
	VATRateID   string          `json:"vatRateID"`
	Description string          `json:"description"`
	Percentage  decimal.Decimal `json:"percentage"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// PaymentTerm sets the due date of generated installments.
type PaymentTerm struct {
	PaymentTermID string `json:"paymentTermID"`
	Description   string `json:"description"`
	DaysToDue     int    `json:"daysToDue"` // 0 means due on the document date
	IsActive      bool   `json:"isActive"`
	AuditFields
}

type CategoryKind string

const (
	CategoryCost    CategoryKind = "COST"
	CategoryRevenue CategoryKind = "REVENUE"
)

// OperatingCategory classifies ledger movements as a cost or revenue.
type OperatingCategory struct {
	CategoryID string       `json:"categoryID"`
	Name       string       `json:"name"`
	Kind       CategoryKind `json:"kind"`
	IsActive   bool         `json:"isActive"`
	AuditFields
}
