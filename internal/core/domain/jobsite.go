package domain

import (
	"time"

	"github.com/SscSPs/biz_management_app/internal/utils/normalize"
)

type JobSiteStatus string

const (
	JobSiteDraft     JobSiteStatus = "DRAFT"
	JobSiteOpen      JobSiteStatus = "OPEN"
	JobSiteSuspended JobSiteStatus = "SUSPENDED"
	JobSiteClosed    JobSiteStatus = "CLOSED"
	JobSiteCancelled JobSiteStatus = "CANCELLED"
)

// JobSite groups costs and revenues of one customer engagement.
type JobSite struct {
	JobSiteID       string        `json:"jobSiteID"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	CustomerID      string        `json:"customerID"`
	Status          JobSiteStatus `json:"status"`
	Address         string        `json:"address"`
	City            string        `json:"city"`
	StartDate       *time.Time    `json:"startDate,omitempty"`
	ExpectedEndDate *time.Time    `json:"expectedEndDate,omitempty"`
	ActualCloseDate *time.Time    `json:"actualCloseDate,omitempty"`
	Description     string        `json:"description"`
	AuditFields
}

// Normalize uppercases code and name and title-cases the place fields.
func (j *JobSite) Normalize() {
	j.Code = normalize.Upper(j.Code)
	j.Name = normalize.Upper(j.Name)
	j.Address = normalize.Title(j.Address)
	j.City = normalize.Title(j.City)
}
