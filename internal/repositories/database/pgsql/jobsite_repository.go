package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobSiteColumns = `job_site_id, code, name, customer_id, status, address, city,
	start_date, expected_end_date, actual_close_date, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJobSiteRepository struct {
	BaseRepository
}

// newPgxJobSiteRepository creates a new repository for job sites.
func newPgxJobSiteRepository(pool *pgxpool.Pool) portsrepo.JobSiteRepositoryFacade {
	return &PgxJobSiteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JobSiteRepositoryFacade = (*PgxJobSiteRepository)(nil)

func scanJobSite(row pgx.Row) (domain.JobSite, error) {
	var j domain.JobSite
	var address, city, description *string
	err := row.Scan(
		&j.JobSiteID,
		&j.Code,
		&j.Name,
		&j.CustomerID,
		&j.Status,
		&address,
		&city,
		&j.StartDate,
		&j.ExpectedEndDate,
		&j.ActualCloseDate,
		&description,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if address != nil {
		j.Address = *address
	}
	if city != nil {
		j.City = *city
	}
	if description != nil {
		j.Description = *description
	}
	return j, err
}

// FindJobSiteByID retrieves a job site by its ID.
func (r *PgxJobSiteRepository) FindJobSiteByID(ctx context.Context, jobSiteID string) (*domain.JobSite, error) {
	query := `SELECT ` + jobSiteColumns + ` FROM job_sites WHERE job_site_id = $1;`
	j, err := scanJobSite(r.Pool.QueryRow(ctx, query, jobSiteID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find job site "+jobSiteID)
	}
	return &j, nil
}

// ListJobSites lists job sites ordered by code.
func (r *PgxJobSiteRepository) ListJobSites(ctx context.Context, customerID *string, status *domain.JobSiteStatus, limit int, offset int) ([]domain.JobSite, error) {
	var b filterBuilder
	if customerID != nil {
		b.add("customer_id = ?", *customerID)
	}
	if status != nil {
		b.add("status = ?", string(*status))
	}
	query := `SELECT ` + jobSiteColumns + ` FROM job_sites` + b.where() + ` ORDER BY code` + b.limit(limit)
	b.args = append(b.args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(b.args))

	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, classifyPgError(err, "failed to query job sites")
	}
	defer rows.Close()

	sites := []domain.JobSite{}
	for rows.Next() {
		j, err := scanJobSite(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan job site row", err)
		}
		sites = append(sites, j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating job site rows", err)
	}
	return sites, nil
}

// SaveJobSite inserts a new job site.
func (r *PgxJobSiteRepository) SaveJobSite(ctx context.Context, j domain.JobSite) error {
	query := `
		INSERT INTO job_sites (` + jobSiteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		j.JobSiteID, j.Code, j.Name, j.CustomerID, string(j.Status), j.Address, j.City,
		j.StartDate, j.ExpectedEndDate, j.ActualCloseDate, j.Description,
		j.CreatedAt, j.CreatedBy, j.LastUpdatedAt, j.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to save job site "+j.JobSiteID)
	}
	return nil
}

// UpdateJobSite rewrites a job site.
func (r *PgxJobSiteRepository) UpdateJobSite(ctx context.Context, j domain.JobSite) error {
	query := `
		UPDATE job_sites SET
			code = $2, name = $3, customer_id = $4, status = $5, address = $6, city = $7,
			start_date = $8, expected_end_date = $9, actual_close_date = $10, description = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE job_site_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		j.JobSiteID, j.Code, j.Name, j.CustomerID, string(j.Status), j.Address, j.City,
		j.StartDate, j.ExpectedEndDate, j.ActualCloseDate, j.Description,
		j.LastUpdatedAt, j.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to update job site "+j.JobSiteID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("job site " + j.JobSiteID)
	}
	return nil
}
