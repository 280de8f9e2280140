package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/biz_management_app/internal/apperrors"
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// DefaultDashboardStatuses are the installment statuses aggregated when the
// caller does not pick any.
var DefaultDashboardStatuses = []domain.InstallmentStatus{domain.InstallmentOpen, domain.InstallmentPartiallyPaid}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	now           func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock sets the clock that decides "today" when no reference date is given.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		now:           time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// Dashboard aggregates outstanding installments and account balances as of
// the reference date. Every figure is computed from source rows.
func (s *reportingService) Dashboard(ctx context.Context, params dto.DashboardParams) (*domain.Dashboard, error) {
	asOf := domain.DateOnly(s.now())
	if params.AsOf != nil && *params.AsOf != "" {
		d, err := dto.ParseDate(*params.AsOf)
		if err != nil {
			return nil, apperrors.NewValidationError("asOf", err.Error())
		}
		asOf = d.Time
	}
	if params.DocumentType != nil && !params.DocumentType.IsValid() {
		return nil, apperrors.NewValidationError("documentType", fmt.Sprintf("unknown document type %q", *params.DocumentType))
	}
	statuses := params.Status
	if len(statuses) == 0 {
		statuses = DefaultDashboardStatuses
	}
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown installment status %q", st))
		}
	}

	filter := domain.DashboardFilter{AsOf: asOf, DocumentType: params.DocumentType, Statuses: statuses}
	installments, err := s.reportingRepo.ListOutstandingInstallments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list installments for dashboard")
		return nil, err
	}
	balances, err := s.reportingRepo.GetAccountBalances(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute account balances", slog.Time("as_of", asOf))
		return nil, err
	}

	dashboard := &domain.Dashboard{
		AsOf:            asOf,
		Receivables:     domain.InstallmentTotals{Outstanding: decimal.Zero, Overdue: decimal.Zero},
		Payables:        domain.InstallmentTotals{Outstanding: decimal.Zero, Overdue: decimal.Zero},
		AccountBalances: balances,
		TotalLiquidity:  decimal.Zero,
	}
	for _, inst := range installments {
		switch inst.Direction {
		case domain.Receivable:
			dashboard.Receivables.Add(inst, asOf)
		case domain.Payable:
			dashboard.Payables.Add(inst, asOf)
		}
	}
	for _, b := range balances {
		dashboard.TotalLiquidity = dashboard.TotalLiquidity.Add(b.Balance)
	}

	s.LogDebug(ctx, "Dashboard computed",
		slog.Time("as_of", asOf),
		slog.Int("installments", len(installments)),
		slog.Int("accounts", len(balances)))
	return dashboard, nil
}
