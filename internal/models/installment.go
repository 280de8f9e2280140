package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is a row of the installments table. The owning party is stored
// as a kind/id pair.
type Installment struct {
	InstallmentID string          `db:"installment_id"`
	DocumentID    string          `db:"document_id"`
	PartyKind     string          `db:"party_kind"`
	PartyID       string          `db:"party_id"`
	Direction     string          `db:"direction"`
	Status        string          `db:"status"`
	DueDate       time.Time       `db:"due_date"`
	AmountDue     decimal.Decimal `db:"amount_due"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	AuditFields
}
