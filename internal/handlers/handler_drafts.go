package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/invoice_drafter/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafter/internal/dto"
	"github.com/SscSPs/invoice_drafter/internal/middleware"
	"github.com/gin-gonic/gin"
)

// draftHandler handles HTTP requests for saved drafts.
type draftHandler struct {
	draftService portssvc.DraftSvc
}

// RegisterDraftRoutes registers the draft routes under rg.
func RegisterDraftRoutes(rg *gin.RouterGroup, draftService portssvc.DraftSvc) {
	h := &draftHandler{draftService: draftService}

	rg.POST("/sessions/:sessionID/drafts", h.saveDraft)
	rg.POST("/sessions/:sessionID/drafts/:draftID/load", h.loadDraft)

	drafts := rg.Group("/drafts")
	{
		drafts.GET("", h.listDrafts)
		drafts.DELETE("/:draftID", h.deleteDraft)
	}
}

// saveDraft godoc
// @Summary Save the session invoice as a draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param draft body dto.SaveDraftRequest false "Draft name"
// @Success 201 {object} dto.DraftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to save draft"
// @Router /sessions/{sessionID}/drafts [post]
func (h *draftHandler) saveDraft(c *gin.Context) {
	var req dto.SaveDraftRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.SaveDraft(c.Request.Context(), c.Param("sessionID"), req.Name)
	if err != nil {
		respondError(c, err, "Failed to save draft")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Draft saved", slog.String("draft_id", draft.DraftID))
	c.JSON(http.StatusCreated, dto.ToDraftResponse(draft))
}

// listDrafts godoc
// @Summary List saved drafts
// @Description Most recently updated first
// @Tags drafts
// @Produce json
// @Param limit query int false "Page size" minimum(1) maximum(200)
// @Param pageToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListDraftsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to list drafts"
// @Router /drafts [get]
func (h *draftHandler) listDrafts(c *gin.Context) {
	var params dto.ListDraftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	drafts, next, err := h.draftService.ListDrafts(c.Request.Context(), params.Limit, params.PageToken)
	if err != nil {
		respondError(c, err, "Failed to list drafts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDraftsResponse(drafts, next))
}

// loadDraft godoc
// @Summary Load a saved draft into the session
// @Tags drafts
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param draftID path string true "Draft ID"
// @Success 200 {object} dto.LoadResponse
// @Failure 404 {object} map[string]string "Session or draft not found"
// @Failure 422 {object} dto.LoadResponse "Draft could not be loaded"
// @Router /sessions/{sessionID}/drafts/{draftID}/load [post]
func (h *draftHandler) loadDraft(c *gin.Context) {
	result, err := h.draftService.LoadDraft(c.Request.Context(), c.Param("sessionID"), c.Param("draftID"))
	if err != nil {
		respondError(c, err, "Failed to load draft")
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.LoadResponse{Success: result.Success, Error: result.Error})
}

// deleteDraft godoc
// @Summary Delete a saved draft
// @Tags drafts
// @Param draftID path string true "Draft ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Draft not found"
// @Router /drafts/{draftID} [delete]
func (h *draftHandler) deleteDraft(c *gin.Context) {
	if err := h.draftService.DeleteDraft(c.Request.Context(), c.Param("draftID")); err != nil {
		respondError(c, err, "Failed to delete draft")
		return
	}
	c.Status(http.StatusNoContent)
}
