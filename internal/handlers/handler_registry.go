package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// registryHandler handles the data-entry registries: parties, job sites and catalogs.
type registryHandler struct {
	registryService portssvc.RegistrySvcFacade
}

func registerRegistryRoutes(rg *gin.RouterGroup, rs portssvc.RegistrySvcFacade) {
	h := &registryHandler{registryService: rs}

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:id", h.getParty)
		parties.PUT("/:id", h.updateParty)
	}

	jobSites := rg.Group("/job-sites")
	{
		jobSites.POST("", h.createJobSite)
		jobSites.GET("", h.listJobSites)
		jobSites.GET("/:id", h.getJobSite)
		jobSites.PUT("/:id", h.updateJobSite)
	}

	vatRates := rg.Group("/vat-rates")
	{
		vatRates.POST("", h.createVATRate)
		vatRates.GET("", h.listVATRates)
		vatRates.PUT("/:id", h.updateVATRate)
	}

	paymentTerms := rg.Group("/payment-terms")
	{
		paymentTerms.POST("", h.createPaymentTerm)
		paymentTerms.GET("", h.listPaymentTerms)
		paymentTerms.PUT("/:id", h.updatePaymentTerm)
	}

	categories := rg.Group("/operating-categories")
	{
		categories.POST("", h.createOperatingCategory)
		categories.GET("", h.listOperatingCategories)
		categories.PUT("/:id", h.updateOperatingCategory)
	}
}

// createParty godoc
// @Summary Create a party
// @Description Creates a customer, supplier or employee. Text fields are normalized before storage.
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   party body dto.SavePartyRequest true "Party"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Duplicate party"
// @Failure 500 {object} dto.ErrorResponse "Failed to create party"
// @Security BearerAuth
// @Router /parties [post]
func (h *registryHandler) createParty(c *gin.Context) {
	var req dto.SavePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	party, err := h.registryService.CreateParty(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create party")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List parties
// @Tags parties
// @Produce  json
// @Param   kind query string false "CUSTOMER, SUPPLIER or EMPLOYEE"
// @Param   search query string false "Prefix of name, fiscal code or VAT number"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.PartyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list parties"
// @Security BearerAuth
// @Router /parties [get]
func (h *registryHandler) listParties(c *gin.Context) {
	var params dto.ListPartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	parties, err := h.registryService.ListParties(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, "list parties")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponses(parties))
}

// getParty godoc
// @Summary Get a party
// @Tags parties
// @Produce  json
// @Param   id path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [get]
func (h *registryHandler) getParty(c *gin.Context) {
	party, err := h.registryService.GetPartyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// updateParty godoc
// @Summary Update a party
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   id path string true "Party ID"
// @Param   party body dto.SavePartyRequest true "Party"
// @Success 200 {object} dto.PartyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [put]
func (h *registryHandler) updateParty(c *gin.Context) {
	var req dto.SavePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	party, err := h.registryService.UpdateParty(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// createJobSite godoc
// @Summary Create a job site
// @Tags job-sites
// @Accept  json
// @Produce  json
// @Param   jobSite body dto.SaveJobSiteRequest true "Job site"
// @Success 201 {object} dto.JobSiteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Code already in use"
// @Security BearerAuth
// @Router /job-sites [post]
func (h *registryHandler) createJobSite(c *gin.Context) {
	var req dto.SaveJobSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	jobSite, err := h.registryService.CreateJobSite(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create job site")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJobSiteResponse(jobSite))
}

// listJobSites godoc
// @Summary List job sites
// @Tags job-sites
// @Produce  json
// @Param   customerID query string false "Customer ID"
// @Param   status query string false "Job site status"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.JobSiteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /job-sites [get]
func (h *registryHandler) listJobSites(c *gin.Context) {
	var params dto.ListJobSitesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	jobSites, err := h.registryService.ListJobSites(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, "list job sites")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobSiteResponses(jobSites))
}

// getJobSite godoc
// @Summary Get a job site
// @Tags job-sites
// @Produce  json
// @Param   id path string true "Job site ID"
// @Success 200 {object} dto.JobSiteResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Job site not found"
// @Security BearerAuth
// @Router /job-sites/{id} [get]
func (h *registryHandler) getJobSite(c *gin.Context) {
	jobSite, err := h.registryService.GetJobSiteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get job site")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobSiteResponse(jobSite))
}

// updateJobSite godoc
// @Summary Update a job site
// @Tags job-sites
// @Accept  json
// @Produce  json
// @Param   id path string true "Job site ID"
// @Param   jobSite body dto.SaveJobSiteRequest true "Job site"
// @Success 200 {object} dto.JobSiteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Job site not found"
// @Security BearerAuth
// @Router /job-sites/{id} [put]
func (h *registryHandler) updateJobSite(c *gin.Context) {
	var req dto.SaveJobSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	jobSite, err := h.registryService.UpdateJobSite(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update job site")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobSiteResponse(jobSite))
}

// createVATRate godoc
// @Summary Create a VAT rate
// @Tags catalogs
// @Accept  json
// @Produce  json
// @Param   rate body dto.SaveVATRateRequest true "VAT rate"
// @Success 201 {object} domain.VATRate
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 409 {object} dto.ErrorResponse "Description already in use"
// @Security BearerAuth
// @Router /vat-rates [post]
func (h *registryHandler) createVATRate(c *gin.Context) {
	var req dto.SaveVATRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	rate, err := h.registryService.CreateVATRate(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create VAT rate")
		return
	}
	c.JSON(http.StatusCreated, rate)
}

// listVATRates godoc
// @Summary List VAT rates
// @Tags catalogs
// @Produce  json
// @Param   activeOnly query bool false "Only active rates"
// @Success 200 {array} domain.VATRate
// @Security BearerAuth
// @Router /vat-rates [get]
func (h *registryHandler) listVATRates(c *gin.Context) {
	var params dto.ActiveOnlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	rates, err := h.registryService.ListVATRates(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		writeServiceError(c, err, "list VAT rates")
		return
	}
	c.JSON(http.StatusOK, rates)
}

// updateVATRate godoc
// @Summary Update a VAT rate
// @Description Changing a rate does not touch existing documents; their lines are recomputed on their next save.
// @Tags catalogs
// @Accept  json
// @Produce  json
// @Param   id path string true "VAT rate ID"
// @Param   rate body dto.SaveVATRateRequest true "VAT rate"
// @Success 200 {object} domain.VATRate
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 404 {object} dto.ErrorResponse "VAT rate not found"
// @Security BearerAuth
// @Router /vat-rates/{id} [put]
func (h *registryHandler) updateVATRate(c *gin.Context) {
	var req dto.SaveVATRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	rate, err := h.registryService.UpdateVATRate(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update VAT rate")
		return
	}
	c.JSON(http.StatusOK, rate)
}

// createPaymentTerm godoc
// @Summary Create a payment term
// @Tags catalogs
// @Accept  json
// @Produce  json
// @Param   term body dto.SavePaymentTermRequest true "Payment term"
// @Success 201 {object} domain.PaymentTerm
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 409 {object} dto.ErrorResponse "Description already in use"
// @Security BearerAuth
// @Router /payment-terms [post]
func (h *registryHandler) createPaymentTerm(c *gin.Context) {
	var req dto.SavePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	term, err := h.registryService.CreatePaymentTerm(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create payment term")
		return
	}
	c.JSON(http.StatusCreated, term)
}

// listPaymentTerms godoc
// @Summary List payment terms
// @Tags catalogs
// @Produce  json
// @Param   activeOnly query bool false "Only active terms"
// @Success 200 {array} domain.PaymentTerm
// @Security BearerAuth
// @Router /payment-terms [get]
func (h *registryHandler) listPaymentTerms(c *gin.Context) {
	var params dto.ActiveOnlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	terms, err := h.registryService.ListPaymentTerms(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		writeServiceError(c, err, "list payment terms")
		return
	}
	c.JSON(http.StatusOK, terms)
}

// updatePaymentTerm godoc
// @Summary Update a payment term
// @Tags catalogs
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment term ID"
// @Param   term body dto.SavePaymentTermRequest true "Payment term"
// @Success 200 {object} domain.PaymentTerm
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 404 {object} dto.ErrorResponse "Payment term not found"
// @Security BearerAuth
// @Router /payment-terms/{id} [put]
func (h *registryHandler) updatePaymentTerm(c *gin.Context) {
	var req dto.SavePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	term, err := h.registryService.UpdatePaymentTerm(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update payment term")
		return
	}
	c.JSON(http.StatusOK, term)
}

// createOperatingCategory godoc
// @Summary Create an operating category
// @Tags catalogs
// @Accept  json
// @Produce  json
// @Param   category body dto.SaveOperatingCategoryRequest true "Operating category"
// @Success 201 {object} domain.OperatingCategory
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Security BearerAuth
// @Router /operating-categories [post]
func (h *registryHandler) createOperatingCategory(c *gin.Context) {
	var req dto.SaveOperatingCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	category, err := h.registryService.CreateOperatingCategory(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create operating category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// listOperatingCategories godoc
// @Summary List operating categories
// @Tags catalogs
// @Produce  json
// @Param   activeOnly query bool false "Only active categories"
// @Success 200 {array} domain.OperatingCategory
// @Security BearerAuth
// @Router /operating-categories [get]
func (h *registryHandler) listOperatingCategories(c *gin.Context) {
	var params dto.ActiveOnlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	categories, err := h.registryService.ListOperatingCategories(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		writeServiceError(c, err, "list operating categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// updateOperatingCategory godoc
// @Summary Update an operating category
// @Tags catalogs
// @Accept  json
// @Produce  json
// @Param   id path string true "Category ID"
// @Param   category body dto.SaveOperatingCategoryRequest true "Operating category"
// @Success 200 {object} domain.OperatingCategory
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Security BearerAuth
// @Router /operating-categories/{id} [put]
func (h *registryHandler) updateOperatingCategory(c *gin.Context) {
	var req dto.SaveOperatingCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	category, err := h.registryService.UpdateOperatingCategory(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update operating category")
		return
	}
	c.JSON(http.StatusOK, category)
}
