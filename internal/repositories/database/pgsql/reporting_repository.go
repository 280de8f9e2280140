package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// ListOutstandingInstallments returns the installments feeding the dashboard
// aggregates.
func (r *reportingRepository) ListOutstandingInstallments(ctx context.Context, filter domain.DashboardFilter) ([]domain.Installment, error) {
	var b filterBuilder
	b.add("i.status = ANY(?)", statusStrings(filter.Statuses))
	if filter.DocumentType != nil {
		b.add("d.document_type = ?", string(*filter.DocumentType))
	}
	query := `SELECT ` + installmentColumns + `
		FROM installments i
		JOIN documents d ON d.document_id = i.document_id` + b.where() + `
		ORDER BY i.due_date, i.installment_id;`

	rows, err := r.Pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("error querying outstanding installments: %w", err)
	}
	return collectInstallments(rows)
}

// GetAccountBalances computes account balances from movements dated on or
// before asOf. Inactive accounts are listed while they still hold money.
func (r *reportingRepository) GetAccountBalances(ctx context.Context, asOf time.Time) ([]domain.AccountBalance, error) {
	query := `
		SELECT a.account_id, a.name,
		       COALESCE(SUM(` + signedAmountExpr + `), 0) AS balance
		FROM financial_accounts a
		LEFT JOIN ledger_movements m ON m.account_id = a.account_id AND m.movement_date <= $1
		GROUP BY a.account_id, a.name, a.is_active
		HAVING a.is_active OR COALESCE(SUM(` + signedAmountExpr + `), 0) <> 0
		ORDER BY a.name;
	`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(asOf))
	if err != nil {
		return nil, fmt.Errorf("error querying account balances: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountBalance{}
	for rows.Next() {
		var row domain.AccountBalance
		if err := rows.Scan(&row.AccountID, &row.Name, &row.Balance); err != nil {
			return nil, fmt.Errorf("error scanning account balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}
	return result, nil
}
