package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is a row of the parties table. Optional text columns are NULL when
// empty.
type Party struct {
	PartyID    string           `db:"party_id"`
	Kind       string           `db:"kind"`
	Name       string           `db:"name"`
	FiscalCode *string          `db:"fiscal_code"`
	VATNumber  *string          `db:"vat_number"`
	Address    *string          `db:"address"`
	PostalCode *string          `db:"postal_code"`
	City       *string          `db:"city"`
	Province   *string          `db:"province"`
	Email      *string          `db:"email"`
	Phone      *string          `db:"phone"`
	Notes      *string          `db:"notes"`
	IsActive   bool             `db:"is_active"`
	JobTitle   *string          `db:"job_title"`
	HireDate   *time.Time       `db:"hire_date"`
	EndDate    *time.Time       `db:"end_date"`
	HourlyCost *decimal.Decimal `db:"hourly_cost"`
	AuditFields
}
