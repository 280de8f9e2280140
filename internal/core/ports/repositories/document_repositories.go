package repositories

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves a document header by id.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindDocumentLines retrieves the lines of a document ordered by position.
	FindDocumentLines(ctx context.Context, documentID string) ([]domain.DocumentLine, error)

	// ListDocuments retrieves a page of documents ordered by date, newest first.
	ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines the write path of a document save. All methods run
// inside the caller's transaction.
type DocumentWriter interface {
	// FindDocumentByIDForUpdate locks the document row for the rest of the transaction.
	FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error)

	// SaveDocumentHeader inserts or updates the header. Derived totals are written
	// separately by UpdateDocumentTotals.
	SaveDocumentHeader(ctx context.Context, tx pgx.Tx, doc domain.Document) error

	// ReplaceDocumentLines swaps the full line set of a document.
	ReplaceDocumentLines(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.DocumentLine) error

	// SumDocumentLines re-reads the persisted lines and sums their derived amounts.
	SumDocumentLines(ctx context.Context, tx pgx.Tx, documentID string) (taxable decimal.Decimal, vat decimal.Decimal, err error)

	// UpdateDocumentTotals persists the header's derived amounts.
	UpdateDocumentTotals(ctx context.Context, tx pgx.Tx, documentID string, taxable, vat, total decimal.Decimal) error

	// DeleteDocument removes a document with its lines and installments.
	DeleteDocument(ctx context.Context, tx pgx.Tx, documentID string) error
}

// DocumentNumberSequencer defines the storage side of sales numbering.
type DocumentNumberSequencer interface {
	// LockNumberSequence creates if needed and locks the (type, year) counter row,
	// returning the last issued sequence.
	LockNumberSequence(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int) (int, error)

	// ListDocumentNumbers returns the numbers already held by documents of type and year.
	ListDocumentNumbers(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int) ([]string, error)

	// AssignDocumentNumber stamps number on the document. A number already in
	// use yields apperrors.ErrConflict.
	AssignDocumentNumber(ctx context.Context, tx pgx.Tx, documentID string, number string) error

	// StoreNumberSequence records the last issued sequence for (type, year).
	StoreNumberSequence(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int, lastIssued int) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
	DocumentNumberSequencer
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
