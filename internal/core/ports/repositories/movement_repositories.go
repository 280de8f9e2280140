package repositories

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// MovementReader defines read operations for ledger movements
type MovementReader interface {
	FindMovementByID(ctx context.Context, movementID string) (*domain.LedgerMovement, error)

	// ListMovementsByAccount retrieves a page of an account's movements, newest first.
	ListMovementsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerMovement, *string, error)
}

// MovementWriter defines transactional write operations for ledger movements
type MovementWriter interface {
	FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.LedgerMovement, error)
	SaveMovement(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error
	UpdateMovement(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error
	DeleteMovement(ctx context.Context, tx pgx.Tx, movementID string) error

	// LinkMovements pairs two transfer legs with each other.
	LinkMovements(ctx context.Context, tx pgx.Tx, firstID, secondID string) error

	// RelinkMovements points every movement linked to one of fromInstallmentIDs
	// at toInstallmentID.
	RelinkMovements(ctx context.Context, tx pgx.Tx, fromInstallmentIDs []string, toInstallmentID string) error

	// SumMovementsByInstallment re-reads the amount of every movement currently
	// linked to the installment.
	SumMovementsByInstallment(ctx context.Context, tx pgx.Tx, installmentID string) (decimal.Decimal, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}

// MovementRepositoryWithTx extends MovementRepositoryFacade with transaction capabilities
type MovementRepositoryWithTx interface {
	MovementRepositoryFacade
	TransactionManager
}
