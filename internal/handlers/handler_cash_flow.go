package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashFlowHandler handles HTTP requests for the cash-flow ledger ("Arus Kas").
type cashFlowHandler struct {
	cashFlowService portssvc.CashFlowSvcFacade
}

func registerCashFlowRoutes(rg *gin.RouterGroup, svc portssvc.CashFlowSvcFacade) {
	h := &cashFlowHandler{cashFlowService: svc}

	cf := rg.Group("/cash-flow")
	{
		cf.GET("", h.listEntries)
		cf.POST("", h.createEntry)
		cf.GET("/ledger", h.dailyLedger)
		cf.GET("/:id", h.getEntry)
		cf.PUT("/:id", h.updateEntry)
		cf.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Record a cash-flow entry
// @Tags cash-flow
// @Accept json
// @Produce json
// @Param entry body dto.CreateCashFlowRequest true "Entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Unknown sub-category or kind/direction mismatch"
// @Security BearerAuth
// @Router /cash-flow [post]
func (h *cashFlowHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateCashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	entry, err := h.cashFlowService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create cash-flow entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// @Summary Get a cash-flow entry
// @Tags cash-flow
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /cash-flow/{id} [get]
func (h *cashFlowHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entry, err := h.cashFlowService.GetEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve cash-flow entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// @Summary List cash-flow rows in a date range
// @Tags cash-flow
// @Produce json
// @Param entity query string true "Entity code"
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {array} dto.EntryResponse
// @Security BearerAuth
// @Router /cash-flow [get]
func (h *cashFlowHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var q dto.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return
	}
	entries, err := h.cashFlowService.ListEntries(c.Request.Context(), q.Entity, q.From, q.To, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list cash-flow entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntryResponse(entries))
}

// @Summary Cash-flow day with running balance
// @Tags cash-flow
// @Produce json
// @Param entity query string true "Entity code"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyLedgerResponse
// @Security BearerAuth
// @Router /cash-flow/ledger [get]
func (h *cashFlowHandler) dailyLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var q dto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return
	}
	ledger, diags, err := h.cashFlowService.DailyLedger(c.Request.Context(), q.Entity, q.Date, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute cash-flow ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyLedgerResponse(*ledger, diags, false))
}

// @Summary Edit a cash-flow entry
// @Tags cash-flow
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateCashFlowRequest true "Changed fields"
// @Success 200 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /cash-flow/{id} [put]
func (h *cashFlowHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateCashFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	entry, err := h.cashFlowService.UpdateEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update cash-flow entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// @Summary Delete a cash-flow entry
// @Tags cash-flow
// @Param id path string true "Entry ID"
// @Success 204
// @Security BearerAuth
// @Router /cash-flow/{id} [delete]
func (h *cashFlowHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.cashFlowService.DeleteEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete cash-flow entry")
		return
	}
	c.Status(http.StatusNoContent)
}
