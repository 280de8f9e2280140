package dto

import (
	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardParams defines query parameters of the dashboard.
type DashboardParams struct {
	AsOf         *string                    `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
	DocumentType *domain.DocumentType       `form:"documentType" binding:"omitempty,oneof=SALES_INVOICE SALES_CREDIT_NOTE PURCHASE_INVOICE PURCHASE_CREDIT_NOTE"`
	Status       []domain.InstallmentStatus `form:"status" binding:"omitempty,dive,oneof=OPEN PARTIALLY_PAID SETTLED VOIDED"`
}

// InstallmentTotalsResponse aggregates one direction of installments.
type InstallmentTotalsResponse struct {
	Outstanding      decimal.Decimal `json:"outstanding"`
	Overdue          decimal.Decimal `json:"overdue"`
	OutstandingCount int             `json:"outstandingCount"`
	OverdueCount     int             `json:"overdueCount"`
}

// DashboardResponse defines the aggregated figures returned to the dashboard.
type DashboardResponse struct {
	AsOf            Date                      `json:"asOf"`
	Receivables     InstallmentTotalsResponse `json:"receivables"`
	Payables        InstallmentTotalsResponse `json:"payables"`
	AccountBalances []domain.AccountBalance   `json:"accountBalances"`
	TotalLiquidity  decimal.Decimal           `json:"totalLiquidity"`
}

// ToDashboardResponse converts a domain.Dashboard to DashboardResponse DTO
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	balances := d.AccountBalances
	if balances == nil {
		balances = []domain.AccountBalance{}
	}
	return DashboardResponse{
		AsOf:            NewDate(d.AsOf),
		Receivables:     InstallmentTotalsResponse(d.Receivables),
		Payables:        InstallmentTotalsResponse(d.Payables),
		AccountBalances: balances,
		TotalLiquidity:  d.TotalLiquidity,
	}
}
