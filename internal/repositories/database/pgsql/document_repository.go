package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/biz_management_app/internal/models"
	"github.com/SscSPs/biz_management_app/internal/utils/mapping"
	"github.com/SscSPs/biz_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const documentColumns = `document_id, document_type, status, document_number, document_date,
	customer_id, supplier_id, job_site_id, payment_term_id, notes,
	taxable_amount, vat_amount, total_amount,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for documents, their lines and numbering.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.DocumentType,
		&m.Status,
		&m.Number,
		&m.DocumentDate,
		&m.CustomerID,
		&m.SupplierID,
		&m.JobSiteID,
		&m.PaymentTermID,
		&m.Notes,
		&m.TaxableAmount,
		&m.VATAmount,
		&m.TotalAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindDocumentByID retrieves a document header by id.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find document "+documentID)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

// FindDocumentByIDForUpdate locks the document row until the transaction ends.
func (r *PgxDocumentRepository) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 FOR UPDATE;`
	m, err := scanDocument(tx.QueryRow(ctx, query, documentID))
	if err != nil {
		return nil, classifyPgError(err, "failed to lock document "+documentID)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

// FindDocumentLines retrieves the lines of a document ordered by position.
func (r *PgxDocumentRepository) FindDocumentLines(ctx context.Context, documentID string) ([]domain.DocumentLine, error) {
	query := `
		SELECT line_id, document_id, position, description, quantity, unit_price, vat_rate_id, taxable_amount, vat_amount
		FROM document_lines
		WHERE document_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, classifyPgError(err, "failed to query lines of document "+documentID)
	}
	defer rows.Close()

	var lines []models.DocumentLine
	for rows.Next() {
		var l models.DocumentLine
		if err := rows.Scan(
			&l.LineID,
			&l.DocumentID,
			&l.Position,
			&l.Description,
			&l.Quantity,
			&l.UnitPrice,
			&l.VATRateID,
			&l.TaxableAmount,
			&l.VATAmount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document lines", err)
	}
	return mapping.ToDomainDocumentLineSlice(lines), nil
}

// ListDocuments retrieves a page of documents ordered by date, newest first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	limit = pagination.ClampLimit(limit)

	var b filterBuilder
	if filter.DocumentType != nil {
		b.add("document_type = ?", string(*filter.DocumentType))
	}
	if filter.Status != nil {
		b.add("status = ?", string(*filter.Status))
	}
	if filter.PartyID != nil {
		b.add("(customer_id = ? OR supplier_id = ?)", *filter.PartyID, *filter.PartyID)
	}
	if filter.JobSiteID != nil {
		b.add("job_site_id = ?", *filter.JobSiteID)
	}
	if filter.Year != nil {
		b.add("EXTRACT(YEAR FROM document_date) = ?", *filter.Year)
	}
	if err := b.addCursor(nextToken, "document_date", "created_at", "document_id"); err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + documentColumns + ` FROM documents` + b.where() +
		` ORDER BY document_date DESC, created_at DESC, document_id DESC` + b.limit(limit+1)

	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, nil, classifyPgError(err, "failed to query documents")
	}
	defer rows.Close()

	docs := make([]domain.Document, 0, limit+1)
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, mapping.ToDomainDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}

	page, token := trimPage(docs, limit, func(d domain.Document) pagination.Cursor {
		return pagination.Cursor{SortDate: d.DocumentDate, CreatedAt: d.CreatedAt, ID: d.DocumentID}
	})
	return page, token, nil
}

// SaveDocumentHeader inserts or updates the header. Totals are left to UpdateDocumentTotals.
func (r *PgxDocumentRepository) SaveDocumentHeader(ctx context.Context, tx pgx.Tx, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (
			document_id, document_type, status, document_number, document_date,
			customer_id, supplier_id, job_site_id, payment_term_id, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (document_id) DO UPDATE SET
			status = EXCLUDED.status,
			document_number = EXCLUDED.document_number,
			document_date = EXCLUDED.document_date,
			customer_id = EXCLUDED.customer_id,
			supplier_id = EXCLUDED.supplier_id,
			job_site_id = EXCLUDED.job_site_id,
			payment_term_id = EXCLUDED.payment_term_id,
			notes = EXCLUDED.notes,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := tx.Exec(ctx, query,
		m.DocumentID,
		m.DocumentType,
		m.Status,
		m.Number,
		m.DocumentDate,
		m.CustomerID,
		m.SupplierID,
		m.JobSiteID,
		m.PaymentTermID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to save document "+m.DocumentID)
	}
	return nil
}

// ReplaceDocumentLines deletes the current lines and inserts the given set.
func (r *PgxDocumentRepository) ReplaceDocumentLines(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.DocumentLine) error {
	if _, err := tx.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1;`, documentID); err != nil {
		return classifyPgError(err, "failed to delete lines of document "+documentID)
	}
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO document_lines (line_id, document_id, position, description, quantity, unit_price, vat_rate_id, taxable_amount, vat_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		l := mapping.ToModelDocumentLine(line)
		batch.Queue(lineQuery,
			l.LineID,
			documentID,
			l.Position,
			l.Description,
			l.Quantity,
			l.UnitPrice,
			l.VATRateID,
			l.TaxableAmount,
			l.VATAmount,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return classifyPgError(err, "failed to insert lines of document "+documentID)
	}
	return nil
}

// SumDocumentLines sums the derived amounts of the persisted lines.
func (r *PgxDocumentRepository) SumDocumentLines(ctx context.Context, tx pgx.Tx, documentID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(taxable_amount), 0), COALESCE(SUM(vat_amount), 0)
		FROM document_lines
		WHERE document_id = $1;
	`
	var taxable, vat decimal.Decimal
	if err := tx.QueryRow(ctx, query, documentID).Scan(&taxable, &vat); err != nil {
		return decimal.Zero, decimal.Zero, classifyPgError(err, "failed to sum lines of document "+documentID)
	}
	return taxable, vat, nil
}

// UpdateDocumentTotals persists the header's derived amounts.
func (r *PgxDocumentRepository) UpdateDocumentTotals(ctx context.Context, tx pgx.Tx, documentID string, taxable, vat, total decimal.Decimal) error {
	query := `UPDATE documents SET taxable_amount = $2, vat_amount = $3, total_amount = $4 WHERE document_id = $1;`
	tag, err := tx.Exec(ctx, query, documentID, taxable, vat, total)
	if err != nil {
		return classifyPgError(err, "failed to update totals of document "+documentID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID)
	}
	return nil
}

// DeleteDocument removes a document. Lines and installments cascade.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, tx pgx.Tx, documentID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return classifyPgError(err, "failed to delete document "+documentID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID)
	}
	return nil
}

// LockNumberSequence creates the (type, year) counter when missing and locks it.
func (r *PgxDocumentRepository) LockNumberSequence(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int) (int, error) {
	insert := `
		INSERT INTO document_sequences (document_type, year, last_issued)
		VALUES ($1, $2, 0)
		ON CONFLICT (document_type, year) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insert, string(docType), year); err != nil {
		return 0, classifyPgError(err, "failed to create number sequence")
	}

	var lastIssued int
	query := `SELECT last_issued FROM document_sequences WHERE document_type = $1 AND year = $2 FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, string(docType), year).Scan(&lastIssued); err != nil {
		return 0, classifyPgError(err, fmt.Sprintf("failed to lock number sequence %s/%d", docType, year))
	}
	return lastIssued, nil
}

// ListDocumentNumbers returns the numbers already held by documents of the
// type whose number carries the given year.
func (r *PgxDocumentRepository) ListDocumentNumbers(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int) ([]string, error) {
	query := `
		SELECT document_number
		FROM documents
		WHERE document_type = $1 AND document_number LIKE $2;
	`
	pattern := fmt.Sprintf("%s-%d-%%", docType.NumberPrefix(), year)
	rows, err := tx.Query(ctx, query, string(docType), pattern)
	if err != nil {
		return nil, classifyPgError(err, "failed to list document numbers")
	}
	numbers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classifyPgError(err, "failed to scan document numbers")
	}
	return numbers, nil
}

// AssignDocumentNumber stamps number on the document. A number held by
// another document surfaces as apperrors.ErrConflict.
func (r *PgxDocumentRepository) AssignDocumentNumber(ctx context.Context, tx pgx.Tx, documentID string, number string) error {
	tag, err := tx.Exec(ctx, `UPDATE documents SET document_number = $2 WHERE document_id = $1;`, documentID, number)
	if err != nil {
		return classifyPgError(err, "failed to assign number "+number)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document " + documentID)
	}
	return nil
}

// StoreNumberSequence records the last issued sequence for (type, year).
func (r *PgxDocumentRepository) StoreNumberSequence(ctx context.Context, tx pgx.Tx, docType domain.DocumentType, year int, lastIssued int) error {
	query := `UPDATE document_sequences SET last_issued = $3 WHERE document_type = $1 AND year = $2;`
	if _, err := tx.Exec(ctx, query, string(docType), year, lastIssued); err != nil {
		return classifyPgError(err, "failed to store number sequence")
	}
	return nil
}
