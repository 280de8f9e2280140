package dto

import (
	"time"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest records an inflow or outflow, optionally settling an installment.
type CreateMovementRequest struct {
	MovementDate  Date                     `json:"movementDate"`
	Description   string                   `json:"description" binding:"required,max=500"`
	Amount        decimal.Decimal          `json:"amount"`
	Direction     domain.MovementDirection `json:"direction" binding:"required,oneof=INFLOW OUTFLOW"`
	AccountID     string                   `json:"accountID" binding:"required"`
	CategoryID    *string                  `json:"categoryID"`
	PartyID       *string                  `json:"partyID"`
	JobSiteID     *string                  `json:"jobSiteID"`
	InstallmentID *string                  `json:"installmentID"`
}

// UpdateMovementRequest replaces the editable fields of an inflow or outflow.
type UpdateMovementRequest = CreateMovementRequest

// CreateTransferRequest moves money between two financial accounts.
type CreateTransferRequest struct {
	MovementDate  Date            `json:"movementDate"`
	Description   string          `json:"description" binding:"required,max=500"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required,nefield=FromAccountID"`
}

// MovementResponse defines the data returned for a ledger movement.
type MovementResponse struct {
	MovementID       string                   `json:"movementID"`
	MovementDate     Date                     `json:"movementDate"`
	Description      string                   `json:"description"`
	Amount           decimal.Decimal          `json:"amount"`
	Direction        domain.MovementDirection `json:"direction"`
	AccountID        string                   `json:"accountID"`
	CategoryID       *string                  `json:"categoryID,omitempty"`
	PartyID          *string                  `json:"partyID,omitempty"`
	JobSiteID        *string                  `json:"jobSiteID,omitempty"`
	InstallmentID    *string                  `json:"installmentID,omitempty"`
	LinkedMovementID *string                  `json:"linkedMovementID,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	CreatedBy        string                   `json:"createdBy"`
	LastUpdatedAt    time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy    string                   `json:"lastUpdatedBy"`
}

// TransferResponse returns both legs of a transfer.
type TransferResponse struct {
	Outgoing MovementResponse `json:"outgoing"`
	Incoming MovementResponse `json:"incoming"`
}

// ListMovementsResponse wraps a page of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToMovementResponse converts a domain.LedgerMovement to MovementResponse DTO
func ToMovementResponse(m *domain.LedgerMovement) MovementResponse {
	return MovementResponse{
		MovementID:       m.MovementID,
		MovementDate:     NewDate(m.MovementDate),
		Description:      m.Description,
		Amount:           m.Amount,
		Direction:        m.Direction,
		AccountID:        m.AccountID,
		CategoryID:       m.CategoryID,
		PartyID:          m.PartyID,
		JobSiteID:        m.JobSiteID,
		InstallmentID:    m.InstallmentID,
		LinkedMovementID: m.LinkedMovementID,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
		LastUpdatedAt:    m.LastUpdatedAt,
		LastUpdatedBy:    m.LastUpdatedBy,
	}
}

// ToListMovementsResponse converts a page of movements.
func ToListMovementsResponse(movements []domain.LedgerMovement, nextToken *string) ListMovementsResponse {
	res := ListMovementsResponse{Movements: make([]MovementResponse, len(movements)), NextToken: nextToken}
	for i := range movements {
		res.Movements[i] = ToMovementResponse(&movements[i])
	}
	return res
}

// ListInstallmentsParams defines query parameters for listing installments.
type ListInstallmentsParams struct {
	DocumentID *string                      `form:"documentID"`
	PartyID    *string                      `form:"partyID"`
	Direction  *domain.InstallmentDirection `form:"direction" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
	Status     []domain.InstallmentStatus   `form:"status" binding:"omitempty,dive,oneof=OPEN PARTIALLY_PAID SETTLED VOIDED"`
	DueBefore  *string                      `form:"dueBefore" binding:"omitempty,datetime=2006-01-02"`
	PageParams
}

// PartySummary identifies the party an installment points at.
type PartySummary struct {
	PartyID string           `json:"partyID"`
	Kind    domain.PartyKind `json:"kind"`
	Name    string           `json:"name,omitempty"`
}

// InstallmentResponse defines the data returned for an installment.
type InstallmentResponse struct {
	InstallmentID string                      `json:"installmentID"`
	DocumentID    string                      `json:"documentID"`
	Party         PartySummary                `json:"party"`
	Direction     domain.InstallmentDirection `json:"direction"`
	Status        domain.InstallmentStatus    `json:"status"`
	DueDate       Date                        `json:"dueDate"`
	AmountDue     decimal.Decimal             `json:"amountDue"`
	AmountPaid    decimal.Decimal             `json:"amountPaid"`
	Residual      decimal.Decimal             `json:"residual"`
	Overdue       bool                        `json:"overdue"`
	CreatedAt     time.Time                   `json:"createdAt"`
	LastUpdatedAt time.Time                   `json:"lastUpdatedAt"`
}

// ListInstallmentsResponse wraps a page of installments.
type ListInstallmentsResponse struct {
	Installments []InstallmentResponse `json:"installments"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToInstallmentResponse converts a domain.Installment; overdue is evaluated at asOf.
func ToInstallmentResponse(inst *domain.Installment, asOf time.Time) InstallmentResponse {
	resp := InstallmentResponse{
		InstallmentID: inst.InstallmentID,
		DocumentID:    inst.DocumentID,
		Direction:     inst.Direction,
		Status:        inst.Status,
		DueDate:       NewDate(inst.DueDate),
		AmountDue:     inst.AmountDue,
		AmountPaid:    inst.AmountPaid,
		Residual:      inst.Residual(),
		Overdue:       inst.IsOverdue(asOf),
		CreatedAt:     inst.CreatedAt,
		LastUpdatedAt: inst.LastUpdatedAt,
	}
	if inst.Party != nil {
		resp.Party = PartySummary{PartyID: inst.Party.PartyID(), Kind: inst.Party.PartyKind()}
	}
	return resp
}

// ToInstallmentResponses converts a slice of installments.
func ToInstallmentResponses(insts []domain.Installment, asOf time.Time) []InstallmentResponse {
	res := make([]InstallmentResponse, len(insts))
	for i := range insts {
		res[i] = ToInstallmentResponse(&insts[i], asOf)
	}
	return res
}
