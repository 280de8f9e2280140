package services

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// MovementReaderSvc defines read operations for ledger movements
type MovementReaderSvc interface {
	GetMovementByID(ctx context.Context, movementID string) (*domain.LedgerMovement, error)
	ListMovementsByAccount(ctx context.Context, accountID string, params dto.PageParams) ([]domain.LedgerMovement, *string, error)
}

// MovementWriterSvc defines write operations for ledger movements. Each write
// reconciles the installments it touches before committing.
type MovementWriterSvc interface {
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest, actorID string) (*domain.LedgerMovement, error)
	UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, actorID string) (*domain.LedgerMovement, error)

	// DeleteMovement removes a movement; a transfer leg takes its mirror leg with it.
	DeleteMovement(ctx context.Context, movementID string, actorID string) error

	// CreateTransfer writes the two linked legs of a transfer.
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, actorID string) (outgoing *domain.LedgerMovement, incoming *domain.LedgerMovement, err error)
}

// InstallmentReaderSvc defines read operations for installments
type InstallmentReaderSvc interface {
	GetInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)
	ListInstallments(ctx context.Context, params dto.ListInstallmentsParams) ([]domain.Installment, *string, error)
	ListInstallmentsByDocument(ctx context.Context, documentID string) ([]domain.Installment, error)
}

// LedgerSvcFacade combines the movement and installment services
type LedgerSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
	InstallmentReaderSvc
}
