package pgsql

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditColumns = `created_at, created_by, last_updated_at, last_updated_by`

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for VAT rates, payment terms and operating categories.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

func activeClause(activeOnly bool) string {
	if activeOnly {
		return " WHERE is_active"
	}
	return ""
}

// --- VAT rates ---

func scanVATRate(row pgx.Row) (domain.VATRate, error) {
	var v domain.VATRate
	err := row.Scan(&v.VATRateID, &v.Description, &v.Percentage, &v.IsActive,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy)
	return v, err
}

// FindVATRateByID retrieves a VAT rate by its ID.
func (r *PgxCatalogRepository) FindVATRateByID(ctx context.Context, vatRateID string) (*domain.VATRate, error) {
	query := `SELECT vat_rate_id, description, percentage, is_active, ` + auditColumns + ` FROM vat_rates WHERE vat_rate_id = $1;`
	v, err := scanVATRate(r.Pool.QueryRow(ctx, query, vatRateID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find VAT rate "+vatRateID)
	}
	return &v, nil
}

// FindVATRatesByIDs returns the rates found keyed by id.
func (r *PgxCatalogRepository) FindVATRatesByIDs(ctx context.Context, vatRateIDs []string) (map[string]domain.VATRate, error) {
	out := make(map[string]domain.VATRate, len(vatRateIDs))
	if len(vatRateIDs) == 0 {
		return out, nil
	}
	query := `SELECT vat_rate_id, description, percentage, is_active, ` + auditColumns + ` FROM vat_rates WHERE vat_rate_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, vatRateIDs)
	if err != nil {
		return nil, classifyPgError(err, "failed to query VAT rates")
	}
	defer rows.Close()
	for rows.Next() {
		v, err := scanVATRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan VAT rate row", err)
		}
		out[v.VATRateID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating VAT rate rows", err)
	}
	return out, nil
}

// ListVATRates lists VAT rates ordered by percentage.
func (r *PgxCatalogRepository) ListVATRates(ctx context.Context, activeOnly bool) ([]domain.VATRate, error) {
	query := `SELECT vat_rate_id, description, percentage, is_active, ` + auditColumns + ` FROM vat_rates` +
		activeClause(activeOnly) + ` ORDER BY percentage DESC, description;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, classifyPgError(err, "failed to query VAT rates")
	}
	defer rows.Close()
	rates := []domain.VATRate{}
	for rows.Next() {
		v, err := scanVATRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan VAT rate row", err)
		}
		rates = append(rates, v)
	}
	return rates, rows.Err()
}

// SaveVATRate inserts a VAT rate.
func (r *PgxCatalogRepository) SaveVATRate(ctx context.Context, v domain.VATRate) error {
	query := `INSERT INTO vat_rates (vat_rate_id, description, percentage, is_active, ` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query, v.VATRateID, v.Description, v.Percentage, v.IsActive,
		v.CreatedAt, v.CreatedBy, v.LastUpdatedAt, v.LastUpdatedBy)
	return classifyPgError(err, "failed to save VAT rate "+v.VATRateID)
}

// UpdateVATRate rewrites a VAT rate.
func (r *PgxCatalogRepository) UpdateVATRate(ctx context.Context, v domain.VATRate) error {
	query := `UPDATE vat_rates SET description = $2, percentage = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE vat_rate_id = $1;`
	return r.execUpdate(ctx, "VAT rate "+v.VATRateID, query,
		v.VATRateID, v.Description, v.Percentage, v.IsActive, v.LastUpdatedAt, v.LastUpdatedBy)
}

// --- Payment terms ---

func scanPaymentTerm(row pgx.Row) (domain.PaymentTerm, error) {
	var t domain.PaymentTerm
	err := row.Scan(&t.PaymentTermID, &t.Description, &t.DaysToDue, &t.IsActive,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	return t, err
}

// FindPaymentTermByID retrieves a payment term by its ID.
func (r *PgxCatalogRepository) FindPaymentTermByID(ctx context.Context, paymentTermID string) (*domain.PaymentTerm, error) {
	query := `SELECT payment_term_id, description, days_to_due, is_active, ` + auditColumns + ` FROM payment_terms WHERE payment_term_id = $1;`
	t, err := scanPaymentTerm(r.Pool.QueryRow(ctx, query, paymentTermID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find payment term "+paymentTermID)
	}
	return &t, nil
}

// ListPaymentTerms lists payment terms ordered by days to due.
func (r *PgxCatalogRepository) ListPaymentTerms(ctx context.Context, activeOnly bool) ([]domain.PaymentTerm, error) {
	query := `SELECT payment_term_id, description, days_to_due, is_active, ` + auditColumns + ` FROM payment_terms` +
		activeClause(activeOnly) + ` ORDER BY days_to_due, description;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, classifyPgError(err, "failed to query payment terms")
	}
	defer rows.Close()
	terms := []domain.PaymentTerm{}
	for rows.Next() {
		t, err := scanPaymentTerm(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment term row", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// SavePaymentTerm inserts a payment term.
func (r *PgxCatalogRepository) SavePaymentTerm(ctx context.Context, t domain.PaymentTerm) error {
	query := `INSERT INTO payment_terms (payment_term_id, description, days_to_due, is_active, ` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query, t.PaymentTermID, t.Description, t.DaysToDue, t.IsActive,
		t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy)
	return classifyPgError(err, "failed to save payment term "+t.PaymentTermID)
}

// UpdatePaymentTerm rewrites a payment term.
func (r *PgxCatalogRepository) UpdatePaymentTerm(ctx context.Context, t domain.PaymentTerm) error {
	query := `UPDATE payment_terms SET description = $2, days_to_due = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE payment_term_id = $1;`
	return r.execUpdate(ctx, "payment term "+t.PaymentTermID, query,
		t.PaymentTermID, t.Description, t.DaysToDue, t.IsActive, t.LastUpdatedAt, t.LastUpdatedBy)
}

// --- Operating categories ---

func scanCategory(row pgx.Row) (domain.OperatingCategory, error) {
	var c domain.OperatingCategory
	err := row.Scan(&c.CategoryID, &c.Name, &c.Kind, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
	return c, err
}

// FindOperatingCategoryByID retrieves an operating category by its ID.
func (r *PgxCatalogRepository) FindOperatingCategoryByID(ctx context.Context, categoryID string) (*domain.OperatingCategory, error) {
	query := `SELECT category_id, name, kind, is_active, ` + auditColumns + ` FROM operating_categories WHERE category_id = $1;`
	c, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find operating category "+categoryID)
	}
	return &c, nil
}

// ListOperatingCategories lists categories ordered by kind and name.
func (r *PgxCatalogRepository) ListOperatingCategories(ctx context.Context, activeOnly bool) ([]domain.OperatingCategory, error) {
	query := `SELECT category_id, name, kind, is_active, ` + auditColumns + ` FROM operating_categories` +
		activeClause(activeOnly) + ` ORDER BY kind, name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, classifyPgError(err, "failed to query operating categories")
	}
	defer rows.Close()
	categories := []domain.OperatingCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan operating category row", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SaveOperatingCategory inserts an operating category.
func (r *PgxCatalogRepository) SaveOperatingCategory(ctx context.Context, c domain.OperatingCategory) error {
	query := `INSERT INTO operating_categories (category_id, name, kind, is_active, ` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query, c.CategoryID, c.Name, string(c.Kind), c.IsActive,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy)
	return classifyPgError(err, "failed to save operating category "+c.CategoryID)
}

// UpdateOperatingCategory rewrites an operating category.
func (r *PgxCatalogRepository) UpdateOperatingCategory(ctx context.Context, c domain.OperatingCategory) error {
	query := `UPDATE operating_categories SET name = $2, kind = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $1;`
	return r.execUpdate(ctx, "operating category "+c.CategoryID, query,
		c.CategoryID, c.Name, string(c.Kind), c.IsActive, c.LastUpdatedAt, c.LastUpdatedBy)
}

// execUpdate runs an UPDATE and reports a missing row as not found.
func (r *BaseRepository) execUpdate(ctx context.Context, what, query string, args ...any) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return classifyPgError(err, "failed to update "+what)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(what)
	}
	return nil
}
