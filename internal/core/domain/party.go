package domain

import (
	"time"

	"github.com/SscSPs/biz_management_app/internal/utils/normalize"
	"github.com/shopspring/decimal"
)

// PartyKind discriminates the registries sharing the parties table.
type PartyKind string

const (
	PartyCustomer PartyKind = "CUSTOMER"
	PartySupplier PartyKind = "SUPPLIER"
	PartyEmployee PartyKind = "EMPLOYEE"
)

// IsValid reports whether k is a known kind.
func (k PartyKind) IsValid() bool {
	switch k {
	case PartyCustomer, PartySupplier, PartyEmployee:
		return true
	}
	return false
}

// Party is a customer, supplier or employee record.
type Party struct {
	PartyID    string    `json:"partyID"`
	Kind       PartyKind `json:"kind"`
	Name       string    `json:"name"`
	FiscalCode string    `json:"fiscalCode"`
	VATNumber  string    `json:"vatNumber"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postalCode"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Notes      string    `json:"notes"`
	IsActive   bool      `json:"isActive"`

	// Employee only.
	JobTitle   string           `json:"jobTitle,omitempty"`
	HireDate   *time.Time       `json:"hireDate,omitempty"`
	EndDate    *time.Time       `json:"endDate,omitempty"`
	HourlyCost *decimal.Decimal `json:"hourlyCost,omitempty"`

	AuditFields
}

// Normalize applies the canonical casing to every text field. It must run on
// every write.
func (p *Party) Normalize() {
	p.Name = normalize.Upper(p.Name)
	p.FiscalCode = normalize.Upper(p.FiscalCode)
	p.VATNumber = normalize.Upper(p.VATNumber)
	p.Province = normalize.Upper(p.Province)
	p.PostalCode = normalize.Upper(p.PostalCode)
	p.Address = normalize.Title(p.Address)
	p.City = normalize.Title(p.City)
	p.Email = normalize.Lower(p.Email)
	p.JobTitle = normalize.Upper(p.JobTitle)
	if p.Kind != PartyEmployee {
		p.JobTitle = ""
		p.HireDate = nil
		p.EndDate = nil
		p.HourlyCost = nil
	}
}
