package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialAccount is a row of the financial_accounts table.
type FinancialAccount struct {
	AccountID string  `db:"account_id"`
	Name      string  `db:"name"`
	IBAN      *string `db:"iban"`
	IsActive  bool    `db:"is_active"`
	AuditFields
}

// LedgerMovement is a row of the ledger_movements table.
type LedgerMovement struct {
	MovementID       string          `db:"movement_id"`
	MovementDate     time.Time       `db:"movement_date"`
	Description      string          `db:"description"`
	Amount           decimal.Decimal `db:"amount"`
	Direction        string          `db:"direction"`
	AccountID        string          `db:"account_id"`
	CategoryID       *string         `db:"category_id"`
	PartyID          *string         `db:"party_id"`
	JobSiteID        *string         `db:"job_site_id"`
	InstallmentID    *string         `db:"installment_id"`
	LinkedMovementID *string         `db:"linked_movement_id"`
	AuditFields
}
