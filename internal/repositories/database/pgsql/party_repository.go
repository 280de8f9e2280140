package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/biz_management_app/internal/models"
	"github.com/SscSPs/biz_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partyColumns = `party_id, kind, name, fiscal_code, vat_number, address, postal_code, city, province,
	email, phone, notes, is_active, job_title, hire_date, end_date, hourly_cost,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for customers, suppliers and employees.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

func scanParty(row pgx.Row) (domain.Party, error) {
	var m models.Party
	if err := row.Scan(
		&m.PartyID,
		&m.Kind,
		&m.Name,
		&m.FiscalCode,
		&m.VATNumber,
		&m.Address,
		&m.PostalCode,
		&m.City,
		&m.Province,
		&m.Email,
		&m.Phone,
		&m.Notes,
		&m.IsActive,
		&m.JobTitle,
		&m.HireDate,
		&m.EndDate,
		&m.HourlyCost,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		return domain.Party{}, err
	}
	return mapping.ToDomainParty(m), nil
}

// FindPartyByID retrieves a party by its ID.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`
	p, err := scanParty(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find party "+partyID)
	}
	return &p, nil
}

// ListParties lists parties ordered by name.
func (r *PgxPartyRepository) ListParties(ctx context.Context, kind *domain.PartyKind, search string, limit int, offset int) ([]domain.Party, error) {
	var b filterBuilder
	if kind != nil {
		b.add("kind = ?", string(*kind))
	}
	if search != "" {
		prefix := search + "%"
		b.add("(name ILIKE ? OR fiscal_code ILIKE ? OR vat_number ILIKE ?)", prefix, prefix, prefix)
	}
	query := `SELECT ` + partyColumns + ` FROM parties` + b.where() + ` ORDER BY name, party_id` + b.limit(limit)
	b.args = append(b.args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(b.args))

	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, classifyPgError(err, "failed to query parties")
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan party row", err)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating party rows", err)
	}
	return parties, nil
}

// SaveParty inserts a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID, m.Kind, m.Name, m.FiscalCode, m.VATNumber, m.Address, m.PostalCode, m.City, m.Province,
		m.Email, m.Phone, m.Notes, m.IsActive, m.JobTitle, m.HireDate, m.EndDate, m.HourlyCost,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to save party "+m.PartyID)
	}
	return nil
}

// UpdateParty rewrites a party. The kind is immutable.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		UPDATE parties SET
			name = $2, fiscal_code = $3, vat_number = $4, address = $5, postal_code = $6, city = $7,
			province = $8, email = $9, phone = $10, notes = $11, is_active = $12, job_title = $13,
			hire_date = $14, end_date = $15, hourly_cost = $16, last_updated_at = $17, last_updated_by = $18
		WHERE party_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PartyID, m.Name, m.FiscalCode, m.VATNumber, m.Address, m.PostalCode, m.City,
		m.Province, m.Email, m.Phone, m.Notes, m.IsActive, m.JobTitle,
		m.HireDate, m.EndDate, m.HourlyCost, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return classifyPgError(err, "failed to update party "+m.PartyID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("party " + m.PartyID)
	}
	return nil
}
