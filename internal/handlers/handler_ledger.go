package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/biz_management_app/internal/core/ports/services"
	"github.com/SscSPs/biz_management_app/internal/dto"
)

// ledgerHandler handles cash movements and transfers.
type ledgerHandler struct {
	ledgerService portssvc.MovementWriterSvc
	readerService portssvc.MovementReaderSvc
}

func registerMovementRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ls, readerService: ls}

	movements := rg.Group("/movements")
	{
		movements.POST("", h.createMovement)
		movements.GET("/:id", h.getMovement)
		movements.PUT("/:id", h.updateMovement)
		movements.DELETE("/:id", h.deleteMovement)
	}
	rg.POST("/transfers", h.createTransfer)
}

// createMovement godoc
// @Summary Record a movement
// @Description Records an inflow or outflow on a financial account. A linked installment is reconciled in the same transaction.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create movement"
// @Security BearerAuth
// @Router /movements [post]
func (h *ledgerHandler) createMovement(c *gin.Context) {
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	movement, err := h.ledgerService.CreateMovement(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// getMovement godoc
// @Summary Get a movement
// @Tags movements
// @Produce  json
// @Param   id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Movement not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get movement"
// @Security BearerAuth
// @Router /movements/{id} [get]
func (h *ledgerHandler) getMovement(c *gin.Context) {
	movement, err := h.readerService.GetMovementByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// updateMovement godoc
// @Summary Update a movement
// @Description Replaces an inflow or outflow. Both the previously and the newly linked installment are reconciled.
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   id path string true "Movement ID"
// @Param   movement body dto.UpdateMovementRequest true "Movement"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Movement not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update movement"
// @Security BearerAuth
// @Router /movements/{id} [put]
func (h *ledgerHandler) updateMovement(c *gin.Context) {
	var req dto.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	movement, err := h.ledgerService.UpdateMovement(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update movement")
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// deleteMovement godoc
// @Summary Delete a movement
// @Description Deletes a movement (both legs for a transfer) and reconciles its installment
// @Tags movements
// @Param   id path string true "Movement ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Movement not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete movement"
// @Security BearerAuth
// @Router /movements/{id} [delete]
func (h *ledgerHandler) deleteMovement(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.ledgerService.DeleteMovement(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeServiceError(c, err, "delete movement")
		return
	}
	c.Status(http.StatusNoContent)
}

// createTransfer godoc
// @Summary Transfer between accounts
// @Description Writes two linked TRANSFER legs, negative on the source account and positive on the destination
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create transfer"
// @Security BearerAuth
// @Router /transfers [post]
func (h *ledgerHandler) createTransfer(c *gin.Context) {
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	outgoing, incoming, err := h.ledgerService.CreateTransfer(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create transfer")
		return
	}
	c.JSON(http.StatusCreated, dto.TransferResponse{
		Outgoing: dto.ToMovementResponse(outgoing),
		Incoming: dto.ToMovementResponse(incoming),
	})
}
