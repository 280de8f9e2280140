package dto

import (
	"time"

	"github.com/SscSPs/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SavePartyRequest creates or replaces a customer, supplier or employee.
type SavePartyRequest struct {
	Kind       domain.PartyKind `json:"kind" binding:"required,oneof=CUSTOMER SUPPLIER EMPLOYEE"`
	Name       string           `json:"name" binding:"required,max=200"`
	FiscalCode string           `json:"fiscalCode" binding:"omitempty,fiscalcode"`
	VATNumber  string           `json:"vatNumber" binding:"omitempty,vatnumber"`
	Address    string           `json:"address" binding:"max=200"`
	PostalCode string           `json:"postalCode" binding:"max=10"`
	City       string           `json:"city" binding:"max=100"`
	Province   string           `json:"province" binding:"omitempty,len=2"`
	Email      string           `json:"email" binding:"omitempty,email"`
	Phone      string           `json:"phone" binding:"max=50"`
	Notes      string           `json:"notes"`
	IsActive   *bool            `json:"isActive"`
	JobTitle   string           `json:"jobTitle" binding:"max=100"`
	HireDate   *Date            `json:"hireDate"`
	EndDate    *Date            `json:"endDate"`
	HourlyCost *decimal.Decimal `json:"hourlyCost"`
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	Kind   *domain.PartyKind `form:"kind" binding:"omitempty,oneof=CUSTOMER SUPPLIER EMPLOYEE"`
	Search string            `form:"search"`
	OffsetParams
}

// SaveJobSiteRequest creates or replaces a job site.
type SaveJobSiteRequest struct {
	Code            string               `json:"code" binding:"required,max=30"`
	Name            string               `json:"name" binding:"required,max=200"`
	CustomerID      string               `json:"customerID" binding:"required"`
	Status          domain.JobSiteStatus `json:"status" binding:"omitempty,oneof=DRAFT OPEN SUSPENDED CLOSED CANCELLED"`
	Address         string               `json:"address" binding:"max=200"`
	City            string               `json:"city" binding:"max=100"`
	StartDate       *Date                `json:"startDate"`
	ExpectedEndDate *Date                `json:"expectedEndDate"`
	ActualCloseDate *Date                `json:"actualCloseDate"`
	Description     string               `json:"description"`
}

// ListJobSitesParams defines query parameters for listing job sites.
type ListJobSitesParams struct {
	CustomerID *string               `form:"customerID"`
	Status     *domain.JobSiteStatus `form:"status" binding:"omitempty,oneof=DRAFT OPEN SUSPENDED CLOSED CANCELLED"`
	OffsetParams
}

// SaveVATRateRequest creates or replaces a VAT rate.
type SaveVATRateRequest struct {
	Description string          `json:"description" binding:"required,max=100"`
	Percentage  decimal.Decimal `json:"percentage"`
	IsActive    *bool           `json:"isActive"`
}

// SavePaymentTermRequest creates or replaces a payment term.
type SavePaymentTermRequest struct {
	Description string `json:"description" binding:"required,max=100"`
	DaysToDue   int    `json:"daysToDue" binding:"min=0,max=3650"`
	IsActive    *bool  `json:"isActive"`
}

// SaveOperatingCategoryRequest creates or replaces an operating category.
type SaveOperatingCategoryRequest struct {
	Name     string              `json:"name" binding:"required,max=100"`
	Kind     domain.CategoryKind `json:"kind" binding:"required,oneof=COST REVENUE"`
	IsActive *bool               `json:"isActive"`
}

// SaveFinancialAccountRequest creates or replaces a financial account.
type SaveFinancialAccountRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	IBAN     string `json:"iban" binding:"omitempty,max=34,alphanum"`
	IsActive *bool  `json:"isActive"`
}

// ActiveOnlyParams filters catalogs to active entries.
type ActiveOnlyParams struct {
	ActiveOnly bool `form:"activeOnly,default=false"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID    string           `json:"partyID"`
	Kind       domain.PartyKind `json:"kind"`
	Name       string           `json:"name"`
	FiscalCode string           `json:"fiscalCode"`
	VATNumber  string           `json:"vatNumber"`
	Address    string           `json:"address"`
	PostalCode string           `json:"postalCode"`
	City       string           `json:"city"`
	Province   string           `json:"province"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Notes      string           `json:"notes"`
	IsActive   bool             `json:"isActive"`
	JobTitle   string           `json:"jobTitle,omitempty"`
	HireDate   *Date            `json:"hireDate,omitempty"`
	EndDate    *Date            `json:"endDate,omitempty"`
	HourlyCost *decimal.Decimal `json:"hourlyCost,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	CreatedBy  string           `json:"createdBy"`
}

// ToPartyResponse converts a domain.Party to PartyResponse DTO
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:    p.PartyID,
		Kind:       p.Kind,
		Name:       p.Name,
		FiscalCode: p.FiscalCode,
		VATNumber:  p.VATNumber,
		Address:    p.Address,
		PostalCode: p.PostalCode,
		City:       p.City,
		Province:   p.Province,
		Email:      p.Email,
		Phone:      p.Phone,
		Notes:      p.Notes,
		IsActive:   p.IsActive,
		JobTitle:   p.JobTitle,
		HireDate:   FromTimePtr(p.HireDate),
		EndDate:    FromTimePtr(p.EndDate),
		HourlyCost: p.HourlyCost,
		CreatedAt:  p.CreatedAt,
		CreatedBy:  p.CreatedBy,
	}
}

// ToPartyResponses converts a slice of parties.
func ToPartyResponses(parties []domain.Party) []PartyResponse {
	res := make([]PartyResponse, len(parties))
	for i := range parties {
		res[i] = ToPartyResponse(&parties[i])
	}
	return res
}

// JobSiteResponse defines the data returned for a job site.
type JobSiteResponse struct {
	JobSiteID       string               `json:"jobSiteID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	CustomerID      string               `json:"customerID"`
	Status          domain.JobSiteStatus `json:"status"`
	Address         string               `json:"address"`
	City            string               `json:"city"`
	StartDate       *Date                `json:"startDate,omitempty"`
	ExpectedEndDate *Date                `json:"expectedEndDate,omitempty"`
	ActualCloseDate *Date                `json:"actualCloseDate,omitempty"`
	Description     string               `json:"description"`
}

// ToJobSiteResponse converts a domain.JobSite to JobSiteResponse DTO
func ToJobSiteResponse(j *domain.JobSite) JobSiteResponse {
	return JobSiteResponse{
		JobSiteID:       j.JobSiteID,
		Code:            j.Code,
		Name:            j.Name,
		CustomerID:      j.CustomerID,
		Status:          j.Status,
		Address:         j.Address,
		City:            j.City,
		StartDate:       FromTimePtr(j.StartDate),
		ExpectedEndDate: FromTimePtr(j.ExpectedEndDate),
		ActualCloseDate: FromTimePtr(j.ActualCloseDate),
		Description:     j.Description,
	}
}

// ToJobSiteResponses converts a slice of job sites.
func ToJobSiteResponses(sites []domain.JobSite) []JobSiteResponse {
	res := make([]JobSiteResponse, len(sites))
	for i := range sites {
		res[i] = ToJobSiteResponse(&sites[i])
	}
	return res
}
