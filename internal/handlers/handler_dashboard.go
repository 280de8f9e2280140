package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

func registerDashboardRoutes(rg *gin.RouterGroup, rs portssvc.ReportingService) {
	rg.GET("/dashboard", func(c *gin.Context) {
		getDashboard(c, rs)
	})
}

// getDashboard godoc
// @Summary Dashboard aggregates
// @Description Receivables, payables, overdue amounts and per-account liquidity computed at the reference date
// @Tags reporting
// @Produce  json
// @Param   asOf query string false "Reference date (YYYY-MM-DD), today when omitted"
// @Param   documentType query string false "Restrict installments to one document type"
// @Param   status query []string false "Installment statuses, OPEN and PARTIALLY_PAID when omitted" collectionFormat(multi)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func getDashboard(c *gin.Context, rs portssvc.ReportingService) {
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	dashboard, err := rs.Dashboard(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, "compute dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}
