package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
	"github.com/SscSPs/biz_management_app/internal/middleware"
)

// installmentHandler exposes receivables and payables.
type installmentHandler struct {
	ledgerService portssvc.InstallmentReaderSvc
	partyService  portssvc.PartySvc
}

func registerInstallmentRoutes(rg *gin.RouterGroup, ls portssvc.InstallmentReaderSvc, ps portssvc.PartySvc) {
	h := &installmentHandler{ledgerService: ls, partyService: ps}

	installments := rg.Group("/installments")
	{
		installments.GET("", h.listInstallments)
		installments.GET("/:id", h.getInstallment)
	}
}

// listInstallments godoc
// @Summary List installments
// @Description Lists installments, latest due date first, with cursor pagination
// @Tags installments
// @Produce  json
// @Param   documentID query string false "Document ID"
// @Param   partyID query string false "Customer or supplier ID"
// @Param   direction query string false "RECEIVABLE or PAYABLE"
// @Param   status query []string false "Statuses" collectionFormat(multi)
// @Param   dueBefore query string false "Only installments due before this day (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor returned by the previous page"
// @Success 200 {object} dto.ListInstallmentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list installments"
// @Security BearerAuth
// @Router /installments [get]
func (h *installmentHandler) listInstallments(c *gin.Context) {
	var params dto.ListInstallmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	insts, next, err := h.ledgerService.ListInstallments(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, "list installments")
		return
	}
	c.JSON(http.StatusOK, dto.ListInstallmentsResponse{
		Installments: dto.ToInstallmentResponses(insts, time.Now()),
		NextToken:    next,
	})
}

// getInstallment godoc
// @Summary Get an installment
// @Description Retrieves an installment with its residual, overdue flag and party name
// @Tags installments
// @Produce  json
// @Param   id path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Installment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get installment"
// @Security BearerAuth
// @Router /installments/{id} [get]
func (h *installmentHandler) getInstallment(c *gin.Context) {
	inst, err := h.ledgerService.GetInstallmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get installment")
		return
	}

	resp := dto.ToInstallmentResponse(inst, time.Now())
	if inst.Party != nil {
		party, err := h.partyService.ResolvePartyRef(c.Request.Context(), inst.Party)
		if err != nil {
			// The installment is still worth returning without the name.
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to resolve installment party",
				slog.String("installment_id", inst.InstallmentID),
				slog.String("error", err.Error()))
		} else {
			resp.Party.Name = party.Name
		}
	}
	c.JSON(http.StatusOK, resp)
}
