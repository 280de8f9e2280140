package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardFilter selects the data feeding the dashboard aggregates.
type DashboardFilter struct {
	AsOf         time.Time
	DocumentType *DocumentType
	Statuses     []InstallmentStatus
}

// InstallmentTotals aggregates residuals of one direction.
type InstallmentTotals struct {
	Outstanding      decimal.Decimal `json:"outstanding"`
	Overdue          decimal.Decimal `json:"overdue"`
	OutstandingCount int             `json:"outstandingCount"`
	OverdueCount     int             `json:"overdueCount"`
}

// Add accumulates inst into the totals.
func (t *InstallmentTotals) Add(inst Installment, asOf time.Time) {
	residual := inst.Residual()
	t.Outstanding = t.Outstanding.Add(residual)
	t.OutstandingCount++
	if inst.IsOverdue(asOf) {
		t.Overdue = t.Overdue.Add(residual)
		t.OverdueCount++
	}
}

// AccountBalance is the balance of one financial account at a reference date.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// Dashboard holds the figures shown on the home page.
type Dashboard struct {
	AsOf            time.Time         `json:"asOf"`
	Receivables     InstallmentTotals `json:"receivables"`
	Payables        InstallmentTotals `json:"payables"`
	AccountBalances []AccountBalance  `json:"accountBalances"`
	TotalLiquidity  decimal.Decimal   `json:"totalLiquidity"`
}
