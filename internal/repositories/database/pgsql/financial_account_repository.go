package pgsql

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/biz_management_app/internal/models"
	"github.com/SscSPs/biz_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// signedAmountExpr is the effect of a movement row on its account balance.
const signedAmountExpr = `CASE m.direction WHEN 'OUTFLOW' THEN -m.amount ELSE m.amount END`

const accountSelect = `
	SELECT a.account_id, a.name, a.iban, a.is_active,
	       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	       COALESCE((SELECT SUM(` + signedAmountExpr + `) FROM ledger_movements m WHERE m.account_id = a.account_id), 0)
	FROM financial_accounts a`

type PgxFinancialAccountRepository struct {
	BaseRepository
}

// newPgxFinancialAccountRepository creates a new repository for financial accounts.
func newPgxFinancialAccountRepository(pool *pgxpool.Pool) portsrepo.FinancialAccountRepositoryFacade {
	return &PgxFinancialAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialAccountRepositoryFacade = (*PgxFinancialAccountRepository)(nil)

func scanFinancialAccount(row pgx.Row) (domain.FinancialAccount, error) {
	var m models.FinancialAccount
	var balance decimal.Decimal
	if err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.IBAN,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&balance,
	); err != nil {
		return domain.FinancialAccount{}, err
	}
	acc := mapping.ToDomainFinancialAccount(m)
	acc.Balance = balance
	return acc, nil
}

// FindFinancialAccountByID retrieves an account with its current balance.
func (r *PgxFinancialAccountRepository) FindFinancialAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	acc, err := scanFinancialAccount(r.Pool.QueryRow(ctx, accountSelect+` WHERE a.account_id = $1;`, accountID))
	if err != nil {
		return nil, classifyPgError(err, "failed to find financial account "+accountID)
	}
	return &acc, nil
}

// ListFinancialAccounts lists accounts ordered by name.
func (r *PgxFinancialAccountRepository) ListFinancialAccounts(ctx context.Context, activeOnly bool) ([]domain.FinancialAccount, error) {
	query := accountSelect
	if activeOnly {
		query += ` WHERE a.is_active`
	}
	rows, err := r.Pool.Query(ctx, query+` ORDER BY a.name;`)
	if err != nil {
		return nil, classifyPgError(err, "failed to query financial accounts")
	}
	defer rows.Close()
	accounts := []domain.FinancialAccount{}
	for rows.Next() {
		acc, err := scanFinancialAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan financial account row", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// SaveFinancialAccount inserts an account.
func (r *PgxFinancialAccountRepository) SaveFinancialAccount(ctx context.Context, account domain.FinancialAccount) error {
	m := mapping.ToModelFinancialAccount(account)
	query := `INSERT INTO financial_accounts (account_id, name, iban, is_active, ` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query, m.AccountID, m.Name, m.IBAN, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return classifyPgError(err, "failed to save financial account "+m.AccountID)
}

// UpdateFinancialAccount rewrites an account.
func (r *PgxFinancialAccountRepository) UpdateFinancialAccount(ctx context.Context, account domain.FinancialAccount) error {
	m := mapping.ToModelFinancialAccount(account)
	query := `UPDATE financial_accounts SET name = $2, iban = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;`
	return r.execUpdate(ctx, "financial account "+m.AccountID, query,
		m.AccountID, m.Name, m.IBAN, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
}
