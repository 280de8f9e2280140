package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InstallmentReader defines read operations for installment data
type InstallmentReader interface {
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)

	// ListInstallmentsByDocument returns every installment of a document, voided ones included.
	ListInstallmentsByDocument(ctx context.Context, documentID string) ([]domain.Installment, error)

	// ListInstallments retrieves a page of installments ordered by due date, latest first.
	ListInstallments(ctx context.Context, filter domain.InstallmentFilter, limit int, nextToken *string) ([]domain.Installment, *string, error)
}

// InstallmentWriter defines transactional write operations for installments
type InstallmentWriter interface {
	// FindInstallmentByIDForUpdate locks the installment row. Returns
	// apperrors.ErrNotFound when it does not exist.
	FindInstallmentByIDForUpdate(ctx context.Context, tx pgx.Tx, installmentID string) (*domain.Installment, error)

	// ListInstallmentsByDocumentForUpdate locks every installment of a
	// document, voided ones included, in id order.
	ListInstallmentsByDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentID string) ([]domain.Installment, error)

	SaveInstallments(ctx context.Context, tx pgx.Tx, installments []domain.Installment) error

	// DeleteInstallments removes the given installments. Movements still
	// pointing at them lose the link.
	DeleteInstallments(ctx context.Context, tx pgx.Tx, installmentIDs []string) error

	// VoidInstallmentsByDocument marks every installment of a document VOIDED.
	VoidInstallmentsByDocument(ctx context.Context, tx pgx.Tx, documentID string, actorID string, at time.Time) error

	// UpdateInstallmentSettlement persists amount paid and status.
	UpdateInstallmentSettlement(ctx context.Context, tx pgx.Tx, installment domain.Installment) error
}

// InstallmentRepositoryFacade combines all installment-related repository interfaces
type InstallmentRepositoryFacade interface {
	InstallmentReader
	InstallmentWriter
}
