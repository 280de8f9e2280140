package services

import (
	"context"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// ReportingService defines the read-only aggregates shown on the dashboard
type ReportingService interface {
	// Dashboard computes receivables, payables and liquidity at the reference
	// date (today when unset).
	Dashboard(ctx context.Context, params dto.DashboardParams) (*domain.Dashboard, error)
}
