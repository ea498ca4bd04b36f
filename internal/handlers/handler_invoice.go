package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/codec"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafter/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafter/internal/dto"
	"github.com/SscSPs/invoice_drafter/internal/export"
	"github.com/SscSPs/invoice_drafter/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests for drafting sessions.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	maxImportBytes int64
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade, maxImportBytes int64) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
		maxImportBytes: maxImportBytes,
	}
}

// RegisterInvoiceRoutes registers the session routes under rg.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, maxImportBytes int64) {
	h := newInvoiceHandler(invoiceService, maxImportBytes)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.createSession)
		sessions.GET("/:sessionID", h.getInvoice)
		sessions.DELETE("/:sessionID", h.deleteSession)
		sessions.GET("/:sessionID/summary", h.getSummary)

		sessions.PATCH("/:sessionID/sender", h.updateSender)
		sessions.PATCH("/:sessionID/receiver", h.updateReceiver)
		sessions.PATCH("/:sessionID/details", h.updateDetails)
		sessions.PUT("/:sessionID/language", h.setLanguage)

		sessions.PUT("/:sessionID/items", h.setItems)
		sessions.POST("/:sessionID/items", h.addItem)
		sessions.DELETE("/:sessionID/items/:itemID", h.removeItem)
		sessions.POST("/:sessionID/items/move", h.moveItem)

		sessions.POST("/:sessionID/invoice-number/increment", h.incrementInvoiceNumber)
		sessions.POST("/:sessionID/invoice-number/decrement", h.decrementInvoiceNumber)
		sessions.POST("/:sessionID/reset", h.resetInvoice)

		sessions.GET("/:sessionID/export", h.exportJSON)
		sessions.GET("/:sessionID/export.xlsx", h.exportXLSX)
		sessions.POST("/:sessionID/import", h.importJSON)
		sessions.POST("/:sessionID/validate", h.validateInvoice)
	}
}

// createSession godoc
// @Summary Start a drafting session
// @Description Creates a session holding a default invoice
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Failure 500 {object} map[string]string "Failed to create session"
// @Router /sessions [post]
func (h *invoiceHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sessionID, inv, err := h.invoiceService.CreateSession(c.Request.Context())
	if err != nil {
		logger.Error("Failed to create session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{SessionID: sessionID, Invoice: inv})
}

// getInvoice godoc
// @Summary Get the session invoice
// @Description Returns the current invoice with derived totals computed
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// deleteSession godoc
// @Summary Discard a session
// @Tags sessions
// @Param sessionID path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID} [delete]
func (h *invoiceHandler) deleteSession(c *gin.Context) {
	if err := h.invoiceService.DeleteSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err, "Failed to delete session")
		return
	}
	c.Status(http.StatusNoContent)
}

// getSummary godoc
// @Summary Get display strings for the invoice
// @Description Localized dates, grouped amounts and the total in words
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.InvoiceSummaryResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/summary [get]
func (h *invoiceHandler) getSummary(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceSummaryResponse(inv))
}

// updateSender godoc
// @Summary Merge fields into the sender
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param patch body domain.PartyPatch true "Fields to overwrite"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/sender [patch]
func (h *invoiceHandler) updateSender(c *gin.Context) {
	var patch domain.PartyPatch
	if !bindJSON(c, &patch) {
		return
	}
	inv, err := h.invoiceService.UpdateSender(c.Request.Context(), c.Param("sessionID"), patch)
	h.respondInvoice(c, inv, err)
}

// updateReceiver godoc
// @Summary Merge fields into the receiver
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param patch body domain.PartyPatch true "Fields to overwrite"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/receiver [patch]
func (h *invoiceHandler) updateReceiver(c *gin.Context) {
	var patch domain.PartyPatch
	if !bindJSON(c, &patch) {
		return
	}
	inv, err := h.invoiceService.UpdateReceiver(c.Request.Context(), c.Param("sessionID"), patch)
	h.respondInvoice(c, inv, err)
}

// updateDetails godoc
// @Summary Merge fields into the invoice details
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param patch body domain.DetailsPatch true "Fields to overwrite"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/details [patch]
func (h *invoiceHandler) updateDetails(c *gin.Context) {
	var patch domain.DetailsPatch
	if !bindJSON(c, &patch) {
		return
	}
	inv, err := h.invoiceService.UpdateDetails(c.Request.Context(), c.Param("sessionID"), patch)
	h.respondInvoice(c, inv, err)
}

// setLanguage godoc
// @Summary Switch the invoice language
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param language body dto.SetLanguageRequest true "Language tag"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/language [put]
func (h *invoiceHandler) setLanguage(c *gin.Context) {
	var req dto.SetLanguageRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.SetLanguage(c.Request.Context(), c.Param("sessionID"), req.Language)
	h.respondInvoice(c, inv, err)
}

// setItems godoc
// @Summary Replace the line items
// @Tags items
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param items body dto.SetItemsRequest true "New item list"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/items [put]
func (h *invoiceHandler) setItems(c *gin.Context) {
	var req dto.SetItemsRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.SetItems(c.Request.Context(), c.Param("sessionID"), req.Items)
	h.respondInvoice(c, inv, err)
}

// addItem godoc
// @Summary Append a blank line item
// @Tags items
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/items [post]
func (h *invoiceHandler) addItem(c *gin.Context) {
	inv, err := h.invoiceService.AddItem(c.Request.Context(), c.Param("sessionID"))
	h.respondInvoice(c, inv, err)
}

// removeItem godoc
// @Summary Remove a line item
// @Description Removing the last item leaves a single blank item
// @Tags items
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param itemID path string true "Item ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Session or item not found"
// @Router /sessions/{sessionID}/items/{itemID} [delete]
func (h *invoiceHandler) removeItem(c *gin.Context) {
	inv, err := h.invoiceService.RemoveItem(c.Request.Context(), c.Param("sessionID"), c.Param("itemID"))
	h.respondInvoice(c, inv, err)
}

// moveItem godoc
// @Summary Reorder a line item
// @Tags items
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param move body dto.MoveItemRequest true "Source and target index"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/items/move [post]
func (h *invoiceHandler) moveItem(c *gin.Context) {
	var req dto.MoveItemRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.MoveItem(c.Request.Context(), c.Param("sessionID"), *req.From, *req.To)
	h.respondInvoice(c, inv, err)
}

// incrementInvoiceNumber godoc
// @Summary Step the invoice number up
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/invoice-number/increment [post]
func (h *invoiceHandler) incrementInvoiceNumber(c *gin.Context) {
	inv, err := h.invoiceService.IncrementInvoiceNumber(c.Request.Context(), c.Param("sessionID"))
	h.respondInvoice(c, inv, err)
}

// decrementInvoiceNumber godoc
// @Summary Step the invoice number down, never below 1
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/invoice-number/decrement [post]
func (h *invoiceHandler) decrementInvoiceNumber(c *gin.Context) {
	inv, err := h.invoiceService.DecrementInvoiceNumber(c.Request.Context(), c.Param("sessionID"))
	h.respondInvoice(c, inv, err)
}

// resetInvoice godoc
// @Summary Reset to a default invoice
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/reset [post]
func (h *invoiceHandler) resetInvoice(c *gin.Context) {
	inv, err := h.invoiceService.ResetInvoice(c.Request.Context(), c.Param("sessionID"))
	h.respondInvoice(c, inv, err)
}

// exportJSON godoc
// @Summary Download the invoice file
// @Tags exchange
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {file} file "invoice.json"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/export [get]
func (h *invoiceHandler) exportJSON(c *gin.Context) {
	data, err := h.invoiceService.ExportJSON(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to export invoice")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", codec.DefaultFilename))
	c.Data(http.StatusOK, codec.ContentType, data)
}

// exportXLSX godoc
// @Summary Download the invoice as a spreadsheet
// @Tags exchange
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param sessionID path string true "Session ID"
// @Success 200 {file} file "invoice.xlsx"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{sessionID}/export.xlsx [get]
func (h *invoiceHandler) exportXLSX(c *gin.Context) {
	data, err := h.invoiceService.ExportXLSX(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to export workbook")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invoice.xlsx"`)
	c.Data(http.StatusOK, export.XLSXContentType, data)
}

// importJSON godoc
// @Summary Load an invoice file into the session
// @Description Malformed files are reported in the body and leave the session unchanged
// @Tags exchange
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param file body object true "Invoice file contents"
// @Success 200 {object} dto.LoadResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 422 {object} dto.LoadResponse "File rejected"
// @Router /sessions/{sessionID}/import [post]
func (h *invoiceHandler) importJSON(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	body := c.Request.Body
	if h.maxImportBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxImportBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		logger.Warn("Failed to read import body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	result, err := h.invoiceService.ImportJSON(c.Request.Context(), c.Param("sessionID"), data)
	if err != nil {
		respondError(c, err, "Failed to import invoice")
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.LoadResponse{Success: result.Success, Error: result.Error})
}

// validateInvoice godoc
// @Summary Check that the invoice can be exported
// @Tags exchange
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.ValidationResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 422 {object} dto.ValidationResponse "Invoice is incomplete"
// @Router /sessions/{sessionID}/validate [post]
func (h *invoiceHandler) validateInvoice(c *gin.Context) {
	result, err := h.invoiceService.ValidateInvoice(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err, "Failed to validate invoice")
		return
	}

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.ToValidationResponse(result))
}

func (h *invoiceHandler) respondInvoice(c *gin.Context, inv domain.Invoice, err error) {
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, inv)
}

// bindJSON binds the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// respondError maps service errors to HTTP statuses. fallback is the message
// shown for unexpected failures, whose details stay in the log.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
