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

// documentHandler handles HTTP requests related to invoices and credit notes.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	ledgerService   portssvc.InstallmentReaderSvc
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, ls portssvc.InstallmentReaderSvc) *documentHandler {
	return &documentHandler{documentService: ds, ledgerService: ls}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, ls portssvc.InstallmentReaderSvc) {
	h := newDocumentHandler(ds, ls)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:id", h.getDocument)
		documents.PUT("/:id", h.updateDocument)
		documents.POST("/:id/status", h.changeDocumentStatus)
		documents.DELETE("/:id", h.deleteDocument)
		documents.GET("/:id/installments", h.listDocumentInstallments)
	}
}

// createDocument godoc
// @Summary Create a document
// @Description Saves a document header with its complete line set. Totals are derived from the lines; confirmed sales documents are numbered and confirmed documents get their installments.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.SaveDocumentRequest true "Document with lines"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Concurrent save, please try again"
// @Failure 500 {object} dto.ErrorResponse "Failed to create document"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	var req dto.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), req, userID)
	if err != nil {
		writeServiceError(c, err, "create document")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Document created", slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List documents
// @Description Lists document headers, newest first, with cursor pagination
// @Tags documents
// @Produce  json
// @Param   documentType query string false "Document type"
// @Param   status query string false "Document status"
// @Param   partyID query string false "Customer or supplier ID"
// @Param   jobSiteID query string false "Job site ID"
// @Param   year query int false "Document year"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor returned by the previous page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list documents"
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	docs, next, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, err, "list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs, next))
}

// getDocument godoc
// @Summary Get a document
// @Description Retrieves a document with its lines
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get document"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "get document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// updateDocument godoc
// @Summary Update a document
// @Description Replaces the header and the complete line set of a document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   document body dto.SaveDocumentRequest true "Document with lines"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent save, please try again"
// @Failure 500 {object} dto.ErrorResponse "Failed to update document"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	var req dto.SaveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeServiceError(c, err, "update document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// changeDocumentStatus godoc
// @Summary Change document status
// @Description Moves a document to DRAFT, CONFIRMED or CANCELLED keeping its lines.
// @Description Confirming creates a receivable installment owed by the customer for a sales invoice or purchase credit note, and a payable one owed to the supplier for a purchase invoice or sales credit note.
// @Description A sales document only holds a customer and a purchase document only a supplier, so confirmed credit notes produce no installment.
// @Description Re-confirming an unchanged document keeps its installment; a changed schedule replaces it and carries linked payments over.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   status body dto.ChangeDocumentStatusRequest true "Target status"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent save, please try again"
// @Failure 500 {object} dto.ErrorResponse "Failed to change document status"
// @Security BearerAuth
// @Router /documents/{id}/status [post]
func (h *documentHandler) changeDocumentStatus(c *gin.Context) {
	var req dto.ChangeDocumentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	userID, ok := actorID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.ChangeDocumentStatus(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		writeServiceError(c, err, "change document status")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete a document
// @Description Deletes a document with its lines and installments. Consumed numbers are not reused.
// @Tags documents
// @Param   id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete document"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeServiceError(c, err, "delete document")
		return
	}
	c.Status(http.StatusNoContent)
}

// listDocumentInstallments godoc
// @Summary List the installments of a document
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {array} dto.InstallmentResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list installments"
// @Security BearerAuth
// @Router /documents/{id}/installments [get]
func (h *documentHandler) listDocumentInstallments(c *gin.Context) {
	documentID := c.Param("id")
	if _, err := h.documentService.GetDocumentByID(c.Request.Context(), documentID); err != nil {
		writeServiceError(c, err, "list installments")
		return
	}

	insts, err := h.ledgerService.ListInstallmentsByDocument(c.Request.Context(), documentID)
	if err != nil {
		writeServiceError(c, err, "list installments")
		return
	}
	c.JSON(http.StatusOK, dto.ToInstallmentResponses(insts, time.Now()))
}
