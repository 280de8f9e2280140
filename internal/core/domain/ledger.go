package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialAccount is a cash or bank account. Balance is never stored; it is
// filled in on read from the account's movements.
type FinancialAccount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	IBAN      string          `json:"iban"`
	IsActive  bool            `json:"isActive"`
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}

type MovementDirection string

const (
	Inflow   MovementDirection = "INFLOW"
	Outflow  MovementDirection = "OUTFLOW"
	Transfer MovementDirection = "TRANSFER"
)

// IsValid reports whether d is a known direction.
func (d MovementDirection) IsValid() bool {
	switch d {
	case Inflow, Outflow, Transfer:
		return true
	}
	return false
}

// LedgerMovement is a single-sided cash entry on one financial account.
// Inflow and outflow amounts are positive; transfer legs carry their sign
// (negative on the source account, positive on the destination).
type LedgerMovement struct {
	MovementID       string            `json:"movementID"`
	MovementDate     time.Time         `json:"movementDate"`
	Description      string            `json:"description"`
	Amount           decimal.Decimal   `json:"amount"`
	Direction        MovementDirection `json:"direction"`
	AccountID        string            `json:"accountID"`
	CategoryID       *string           `json:"categoryID,omitempty"`
	PartyID          *string           `json:"partyID,omitempty"`
	JobSiteID        *string           `json:"jobSiteID,omitempty"`
	InstallmentID    *string           `json:"installmentID,omitempty"`
	LinkedMovementID *string           `json:"linkedMovementID,omitempty"`
	AuditFields
}

// SignedAmount is the movement's effect on its account balance.
func (m LedgerMovement) SignedAmount() decimal.Decimal {
	if m.Direction == Outflow {
		return m.Amount.Neg()
	}
	return m.Amount
}
