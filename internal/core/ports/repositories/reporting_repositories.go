package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
)

// ReportingRepository defines the read-only queries behind the dashboard
type ReportingRepository interface {
	// ListOutstandingInstallments returns installments whose status is in
	// filter.Statuses, optionally restricted to one document type.
	ListOutstandingInstallments(ctx context.Context, filter domain.DashboardFilter) ([]domain.Installment, error)

	// GetAccountBalances computes account balances over movements dated on or
	// before asOf. Inactive accounts are included while their balance is not zero.
	GetAccountBalances(ctx context.Context, asOf time.Time) ([]domain.AccountBalance, error)
}
