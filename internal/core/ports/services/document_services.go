package services

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// DocumentReaderSvc defines read operations for documents
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a document with its lines.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a page of document headers, newest first.
	ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, *string, error)
}

// DocumentWriterSvc defines the document save path. Every write recomputes
// totals, numbers confirmed sales documents and resyncs installments in one
// transaction.
type DocumentWriterSvc interface {
	// CreateDocument persists a new document with its complete line set.
	CreateDocument(ctx context.Context, req dto.SaveDocumentRequest, actorID string) (*domain.Document, error)

	// UpdateDocument replaces the header and the complete line set of a document.
	UpdateDocument(ctx context.Context, documentID string, req dto.SaveDocumentRequest, actorID string) (*domain.Document, error)

	// ChangeDocumentStatus moves a document to status keeping its lines.
	ChangeDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, actorID string) (*domain.Document, error)

	// DeleteDocument removes a document together with its lines and installments.
	DeleteDocument(ctx context.Context, documentID string, actorID string) error
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
