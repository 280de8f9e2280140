package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// accountHandler handles HTTP requests related to financial accounts.
type accountHandler struct {
	accountService  portssvc.FinancialAccountSvc
	movementService portssvc.MovementReaderSvc
}

// registerAccountRoutes registers routes related to financial accounts.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.FinancialAccountSvc, ms portssvc.MovementReaderSvc) {
	h := &accountHandler{accountService: as, movementService: ms}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.GET("/:id/movements", h.listAccountMovements)
	}
}

// createAccount godoc
// @Summary Create a financial account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.SaveFinancialAccountRequest true "Account details"
// @Success 201 {object} domain.FinancialAccount
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.SaveFinancialAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateFinancialAccount(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// listAccounts godoc
// @Summary List financial accounts
// @Description Lists accounts with their balance computed from movements
// @Tags accounts
// @Produce  json
// @Param   activeOnly query bool false "Only active accounts"
// @Success 200 {array} domain.FinancialAccount
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ActiveOnlyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}
	accounts, err := h.accountService.ListFinancialAccounts(c.Request.Context(), params.ActiveOnly)
	if err != nil {
		writeServiceError(c, err, "list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// getAccount godoc
// @Summary Get a financial account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} domain.FinancialAccount
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetFinancialAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// updateAccount godoc
// @Summary Update a financial account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.SaveFinancialAccountRequest true "Account details"
// @Success 200 {object} domain.FinancialAccount
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.SaveFinancialAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateFinancialAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// listAccountMovements godoc
// @Summary List the movements of an account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor returned by the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/movements [get]
func (h *accountHandler) listAccountMovements(c *gin.Context) {
	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	movements, next, err := h.movementService.ListMovementsByAccount(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		writeServiceError(c, err, "list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(movements, next))
}
