package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/biz_management_app/internal/models"
	"github.com/SscSPs/biz_management_app/internal/utils/mapping"
	"github.com/SscSPs/biz_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const installmentColumns = `i.installment_id, i.document_id, i.party_kind, i.party_id, i.direction, i.status,
	i.due_date, i.amount_due, i.amount_paid,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by`

type PgxInstallmentRepository struct {
	BaseRepository
}

// newPgxInstallmentRepository creates a new repository for installment data.
func newPgxInstallmentRepository(pool *pgxpool.Pool) portsrepo.InstallmentRepositoryFacade {
	return &PgxInstallmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InstallmentRepositoryFacade = (*PgxInstallmentRepository)(nil)

func scanInstallment(row pgx.Row) (domain.Installment, error) {
	var m models.Installment
	if err := row.Scan(
		&m.InstallmentID,
		&m.DocumentID,
		&m.PartyKind,
		&m.PartyID,
		&m.Direction,
		&m.Status,
		&m.DueDate,
		&m.AmountDue,
		&m.AmountPaid,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		return domain.Installment{}, err
	}
	return mapping.ToDomainInstallment(m)
}

func collectInstallments(rows pgx.Rows) ([]domain.Installment, error) {
	defer rows.Close()
	var out []domain.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan installment row", err)
		}
		out = append(out, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating installment rows", err)
	}
	return out, nil
}

// FindInstallmentByID retrieves an installment by its ID.
func (r *PgxInstallmentRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments i WHERE i.installment_id = $1;`
	inst, err := scanInstallment(r.Pool.QueryRow(ctx, query, installmentID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find installment "+installmentID)
	}
	return &inst, nil
}

// FindInstallmentByIDForUpdate locks the installment row until the transaction ends.
func (r *PgxInstallmentRepository) FindInstallmentByIDForUpdate(ctx context.Context, tx pgx.Tx, installmentID string) (*domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments i WHERE i.installment_id = $1 FOR UPDATE;`
	inst, err := scanInstallment(tx.QueryRow(ctx, query, installmentID))
	if err != nil {
		return nil, classifyPgError(err, "failed to lock installment "+installmentID)
	}
	return &inst, nil
}

// ListInstallmentsByDocument returns every installment of a document ordered by due date.
func (r *PgxInstallmentRepository) ListInstallmentsByDocument(ctx context.Context, documentID string) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments i WHERE i.document_id = $1 ORDER BY i.due_date, i.installment_id;`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, classifyPgError(err, "failed to query installments of document "+documentID)
	}
	return collectInstallments(rows)
}

// ListInstallments retrieves a page of installments ordered by due date, latest first.
func (r *PgxInstallmentRepository) ListInstallments(ctx context.Context, filter domain.InstallmentFilter, limit int, nextToken *string) ([]domain.Installment, *string, error) {
	limit = pagination.ClampLimit(limit)

	var b filterBuilder
	if filter.DocumentID != nil {
		b.add("i.document_id = ?", *filter.DocumentID)
	}
	if filter.PartyID != nil {
		b.add("i.party_id = ?", *filter.PartyID)
	}
	if filter.Direction != nil {
		b.add("i.direction = ?", string(*filter.Direction))
	}
	if len(filter.Statuses) > 0 {
		b.add("i.status = ANY(?)", statusStrings(filter.Statuses))
	}
	if filter.DueBefore != nil {
		b.add("i.due_date < ?", domain.DateOnly(*filter.DueBefore))
	}
	if err := b.addCursor(nextToken, "i.due_date", "i.created_at", "i.installment_id"); err != nil {
		return nil, nil, err
	}

	query := `SELECT ` + installmentColumns + ` FROM installments i` + b.where() +
		` ORDER BY i.due_date DESC, i.created_at DESC, i.installment_id DESC` + b.limit(limit+1)
	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, nil, classifyPgError(err, "failed to query installments")
	}
	insts, err := collectInstallments(rows)
	if err != nil {
		return nil, nil, err
	}

	page, token := trimPage(insts, limit, func(i domain.Installment) pagination.Cursor {
		return pagination.Cursor{SortDate: i.DueDate, CreatedAt: i.CreatedAt, ID: i.InstallmentID}
	})
	return page, token, nil
}

// ListInstallmentsByDocumentForUpdate locks the installments of a document in id order.
func (r *PgxInstallmentRepository) ListInstallmentsByDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentID string) ([]domain.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments i WHERE i.document_id = $1 ORDER BY i.installment_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, documentID)
	if err != nil {
		return nil, classifyPgError(err, "failed to lock installments of document "+documentID)
	}
	return collectInstallments(rows)
}

// SaveInstallments inserts new installments in one batch.
func (r *PgxInstallmentRepository) SaveInstallments(ctx context.Context, tx pgx.Tx, installments []domain.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO installments (
			installment_id, document_id, party_kind, party_id, direction, status,
			due_date, amount_due, amount_paid,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, inst := range installments {
		m, err := mapping.ToModelInstallment(inst)
		if err != nil {
			return apperrors.NewAppError(500, "invalid installment", err)
		}
		batch.Queue(query,
			m.InstallmentID,
			m.DocumentID,
			m.PartyKind,
			m.PartyID,
			m.Direction,
			m.Status,
			m.DueDate,
			m.AmountDue,
			m.AmountPaid,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return classifyPgError(err, "failed to insert installments")
	}
	return nil
}

// DeleteInstallments removes the given installments.
func (r *PgxInstallmentRepository) DeleteInstallments(ctx context.Context, tx pgx.Tx, installmentIDs []string) error {
	if len(installmentIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE installment_id = ANY($1);`, installmentIDs); err != nil {
		return classifyPgError(err, "failed to delete installments")
	}
	return nil
}

// VoidInstallmentsByDocument marks every installment of a document VOIDED.
func (r *PgxInstallmentRepository) VoidInstallmentsByDocument(ctx context.Context, tx pgx.Tx, documentID string, actorID string, at time.Time) error {
	query := `
		UPDATE installments
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1 AND status <> $2;
	`
	if _, err := tx.Exec(ctx, query, documentID, string(domain.InstallmentVoided), at, actorID); err != nil {
		return classifyPgError(err, "failed to void installments of document "+documentID)
	}
	return nil
}

// UpdateInstallmentSettlement persists amount paid and status.
func (r *PgxInstallmentRepository) UpdateInstallmentSettlement(ctx context.Context, tx pgx.Tx, installment domain.Installment) error {
	query := `
		UPDATE installments
		SET amount_paid = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE installment_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		installment.InstallmentID,
		installment.AmountPaid,
		string(installment.Status),
		installment.LastUpdatedAt,
		installment.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to update installment "+installment.InstallmentID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("installment " + installment.InstallmentID)
	}
	return nil
}

func statusStrings(statuses []domain.InstallmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
