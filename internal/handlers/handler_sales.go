package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// salesHandler handles HTTP requests for sales entries.
type salesHandler struct {
	salesService portssvc.SalesSvcFacade
}

func registerSalesRoutes(rg *gin.RouterGroup, svc portssvc.SalesSvcFacade) {
	h := &salesHandler{salesService: svc}

	sales := rg.Group("/sales")
	{
		sales.GET("", h.listEntries)
		sales.POST("", h.createEntry)
		sales.GET("/summary", h.monthlySummary)
		sales.GET("/:id", h.getEntry)
		sales.PUT("/:id", h.updateEntry)
		sales.DELETE("/:id", h.deleteEntry)
	}
}

// @Summary Record sales
// @Tags sales
// @Accept json
// @Produce json
// @Param entry body dto.CreateSalesRequest true "Sales entry"
// @Success 201 {object} dto.SalesResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *salesHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	entry, err := h.salesService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create sales entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalesResponse(entry))
}

func (h *salesHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	entry, err := h.salesService.GetEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve sales entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesResponse(entry))
}

// @Summary List an entity's sales for a month
// @Tags sales
// @Produce json
// @Param entity query string true "Entity code"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {array} dto.SalesResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *salesHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return
	}
	entries, err := h.salesService.ListEntries(c.Request.Context(), q.Entity, q.Month, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list sales entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSalesResponse(entries))
}

// @Summary Monthly sales summary
// @Description Per-day totals plus the cash and non-cash split.
// @Tags sales
// @Produce json
// @Param entity query string true "Entity code"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.SalesSummaryResponse
// @Security BearerAuth
// @Router /sales/summary [get]
func (h *salesHandler) monthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return
	}
	summary, err := h.salesService.MonthlySummary(c.Request.Context(), q.Entity, q.Month, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to summarise sales")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesSummaryResponse(summary))
}

func (h *salesHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	entry, err := h.salesService.UpdateEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update sales entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesResponse(entry))
}

func (h *salesHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	if err := h.salesService.DeleteEntry(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete sales entry")
		return
	}
	c.Status(http.StatusNoContent)
}
