package pgsql

import (
	"context"

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

const movementColumns = `movement_id, movement_date, description, amount, direction, account_id,
	category_id, party_id, job_site_id, installment_id, linked_movement_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for ledger movements.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryWithTx {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryWithTx = (*PgxMovementRepository)(nil)

func scanMovement(row pgx.Row) (domain.LedgerMovement, error) {
	var m models.LedgerMovement
	if err := row.Scan(
		&m.MovementID,
		&m.MovementDate,
		&m.Description,
		&m.Amount,
		&m.Direction,
		&m.AccountID,
		&m.CategoryID,
		&m.PartyID,
		&m.JobSiteID,
		&m.InstallmentID,
		&m.LinkedMovementID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		return domain.LedgerMovement{}, err
	}
	return mapping.ToDomainLedgerMovement(m), nil
}

// FindMovementByID retrieves a movement by its ID.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.LedgerMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM ledger_movements WHERE movement_id = $1;`
	mv, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find movement "+movementID)
	}
	return &mv, nil
}

// FindMovementByIDForUpdate locks the movement row until the transaction ends.
func (r *PgxMovementRepository) FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.LedgerMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM ledger_movements WHERE movement_id = $1 FOR UPDATE;`
	mv, err := scanMovement(tx.QueryRow(ctx, query, movementID))
	if err != nil {
		return nil, classifyPgError(err, "failed to lock movement "+movementID)
	}
	return &mv, nil
}

// ListMovementsByAccount retrieves a page of an account's movements, newest first.
func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerMovement, *string, error) {
	limit = pagination.ClampLimit(limit)

	var b filterBuilder
	b.add("account_id = ?", accountID)
	if err := b.addCursor(nextToken, "movement_date", "created_at", "movement_id"); err != nil {
		return nil, nil, err
	}
	query := `SELECT ` + movementColumns + ` FROM ledger_movements` + b.where() +
		` ORDER BY movement_date DESC, created_at DESC, movement_id DESC` + b.limit(limit+1)

	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, nil, classifyPgError(err, "failed to query movements of account "+accountID)
	}
	defer rows.Close()

	movements := make([]domain.LedgerMovement, 0, limit+1)
	for rows.Next() {
		mv, err := scanMovement(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		movements = append(movements, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating movement rows", err)
	}

	page, token := trimPage(movements, limit, func(m domain.LedgerMovement) pagination.Cursor {
		return pagination.Cursor{SortDate: m.MovementDate, CreatedAt: m.CreatedAt, ID: m.MovementID}
	})
	return page, token, nil
}

// SaveMovement inserts a movement.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error {
	m := mapping.ToModelLedgerMovement(movement)
	query := `
		INSERT INTO ledger_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.MovementDate,
		m.Description,
		m.Amount,
		m.Direction,
		m.AccountID,
		m.CategoryID,
		m.PartyID,
		m.JobSiteID,
		m.InstallmentID,
		m.LinkedMovementID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to save movement "+m.MovementID)
	}
	return nil
}

// UpdateMovement rewrites every mutable column of a movement.
func (r *PgxMovementRepository) UpdateMovement(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error {
	m := mapping.ToModelLedgerMovement(movement)
	query := `
		UPDATE ledger_movements SET
			movement_date = $2, description = $3, amount = $4, direction = $5, account_id = $6,
			category_id = $7, party_id = $8, job_site_id = $9, installment_id = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE movement_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.MovementID,
		m.MovementDate,
		m.Description,
		m.Amount,
		m.Direction,
		m.AccountID,
		m.CategoryID,
		m.PartyID,
		m.JobSiteID,
		m.InstallmentID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to update movement "+m.MovementID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("movement " + m.MovementID)
	}
	return nil
}

// DeleteMovement removes a movement.
func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, tx pgx.Tx, movementID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM ledger_movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return classifyPgError(err, "failed to delete movement "+movementID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("movement " + movementID)
	}
	return nil
}

// LinkMovements points two transfer legs at each other.
func (r *PgxMovementRepository) LinkMovements(ctx context.Context, tx pgx.Tx, firstID, secondID string) error {
	query := `
		UPDATE ledger_movements
		SET linked_movement_id = CASE movement_id WHEN $1 THEN $2 ELSE $1 END
		WHERE movement_id IN ($1, $2);
	`
	tag, err := tx.Exec(ctx, query, firstID, secondID)
	if err != nil {
		return classifyPgError(err, "failed to link movements")
	}
	if tag.RowsAffected() != 2 {
		return apperrors.NewNotFoundError("transfer leg " + firstID + " or " + secondID)
	}
	return nil
}

// RelinkMovements moves installment links from fromInstallmentIDs to toInstallmentID.
func (r *PgxMovementRepository) RelinkMovements(ctx context.Context, tx pgx.Tx, fromInstallmentIDs []string, toInstallmentID string) error {
	if len(fromInstallmentIDs) == 0 {
		return nil
	}
	query := `UPDATE ledger_movements SET installment_id = $2 WHERE installment_id = ANY($1);`
	if _, err := tx.Exec(ctx, query, fromInstallmentIDs, toInstallmentID); err != nil {
		return classifyPgError(err, "failed to relink movements to installment "+toInstallmentID)
	}
	return nil
}

// SumMovementsByInstallment sums the amounts of the movements linked to an installment.
func (r *PgxMovementRepository) SumMovementsByInstallment(ctx context.Context, tx pgx.Tx, installmentID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM ledger_movements WHERE installment_id = $1;`
	if err := tx.QueryRow(ctx, query, installmentID).Scan(&total); err != nil {
		return decimal.Zero, classifyPgError(err, "failed to sum movements of installment "+installmentID)
	}
	return total, nil
}
