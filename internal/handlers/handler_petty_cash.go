package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pettyCashHandler handles HTTP requests for the petty-cash ledger ("Kas Kecil").
type pettyCashHandler struct {
	pettyCashService portssvc.PettyCashSvcFacade
}

func newPettyCashHandler(svc portssvc.PettyCashSvcFacade) *pettyCashHandler {
	return &pettyCashHandler{pettyCashService: svc}
}

func registerPettyCashRoutes(rg *gin.RouterGroup, svc portssvc.PettyCashSvcFacade) {
	h := newPettyCashHandler(svc)

	pc := rg.Group("/petty-cash")
	{
		pc.GET("", h.listEntries)
		pc.POST("", h.createEntry)
		pc.GET("/pending", h.listPending)
		pc.GET("/ledger", h.dailyLedger)
		pc.POST("/carry-forward", h.carryForward)
		pc.GET("/:id", h.getEntry)
		pc.PUT("/:id", h.updateEntry)
		pc.DELETE("/:id", h.deleteEntry)
		pc.POST("/:id/approve", h.approveEntry)
		pc.POST("/:id/reject", h.rejectEntry)
	}
}

// createEntry godoc
// @Summary Record a petty-cash entry
// @Description Outflows above the approval threshold start pending.
// @Tags petty-cash
// @Accept json
// @Produce json
// @Param entry body dto.CreatePettyCashRequest true "Entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /petty-cash [post]
func (h *pettyCashHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreatePettyCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	entry, err := h.pettyCashService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create petty-cash entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a petty-cash entry
// @Tags petty-cash
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /petty-cash/{id} [get]
func (h *pettyCashHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entry, err := h.pettyCashService.GetEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve petty-cash entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List a day's petty-cash rows
// @Description Every row of the entity on the day, carry-forward markers included.
// @Tags petty-cash
// @Produce json
// @Param entity query string true "Entity code"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {array} dto.EntryResponse
// @Security BearerAuth
// @Router /petty-cash [get]
func (h *pettyCashHandler) listEntries(c *gin.Context) {
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
	entries, err := h.pettyCashService.ListEntries(c.Request.Context(), q.Entity, q.Date, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list petty-cash entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntryResponse(entries))
}

// listPending godoc
// @Summary List entries awaiting approval
// @Tags petty-cash
// @Produce json
// @Success 200 {array} dto.EntryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /petty-cash/pending [get]
func (h *pettyCashHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entries, err := h.pettyCashService.ListPending(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list pending entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntryResponse(entries))
}

// dailyLedger godoc
// @Summary Petty-cash day with running balance
// @Description Opening balance, rows with running balance, totals and closing balance.
// @Tags petty-cash
// @Produce json
// @Param entity query string true "Entity code"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyLedgerResponse
// @Security BearerAuth
// @Router /petty-cash/ledger [get]
func (h *pettyCashHandler) dailyLedger(c *gin.Context) {
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
	ledger, diags, err := h.pettyCashService.DailyLedger(c.Request.Context(), q.Entity, q.Date, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute petty-cash ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyLedgerResponse(*ledger, diags, true))
}

// carryForward godoc
// @Summary Carry a day's closing balance forward
// @Description Stores the closing balance of the day as the marker opening the next day.
// @Tags petty-cash
// @Accept json
// @Produce json
// @Param request body dto.CarryForwardRequest true "Entity and day"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} ErrorResponse "Next day already opened"
// @Security BearerAuth
// @Router /petty-cash/carry-forward [post]
func (h *pettyCashHandler) carryForward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CarryForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	marker, err := h.pettyCashService.CarryForward(c.Request.Context(), req.Entity, req.Date, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to carry balance forward")
		return
	}
	logger.Info("Balance carried forward", slog.String("entity", req.Entity), slog.String("date", req.Date))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(marker))
}

// updateEntry godoc
// @Summary Edit a petty-cash entry
// @Description Allowed on the creation day, or any time for approvers.
// @Tags petty-cash
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdatePettyCashRequest true "Changed fields"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} ErrorResponse "Edit window closed or entry rejected"
// @Security BearerAuth
// @Router /petty-cash/{id} [put]
func (h *pettyCashHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdatePettyCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	entry, err := h.pettyCashService.UpdateEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update petty-cash entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a petty-cash entry
// @Tags petty-cash
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /petty-cash/{id} [delete]
func (h *pettyCashHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.pettyCashService.DeleteEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete petty-cash entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// approveEntry godoc
// @Summary Approve a pending entry
// @Tags petty-cash
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Security BearerAuth
// @Router /petty-cash/{id}/approve [post]
func (h *pettyCashHandler) approveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entry, err := h.pettyCashService.ApproveEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// rejectEntry godoc
// @Summary Reject a pending entry
// @Tags petty-cash
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} ErrorResponse "Entry is not pending"
// @Security BearerAuth
// @Router /petty-cash/{id}/reject [post]
func (h *pettyCashHandler) rejectEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entry, err := h.pettyCashService.RejectEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reject entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
