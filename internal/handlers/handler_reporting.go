package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/petty-cash/daily", h.getPettyCashDaily)
	}
}

func splitEntities(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeRendered sends a printable report. PDFs download, HTML opens inline.
func writeRendered(c *gin.Context, rendered *portssvc.RenderedReport) {
	disposition := "inline"
	if strings.HasSuffix(rendered.Filename, ".pdf") {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+rendered.Filename+`"`)
	if rendered.ArchiveKey != "" {
		c.Header("X-Report-Archive-Key", rendered.ArchiveKey)
	}
	c.Data(http.StatusOK, rendered.ContentType, rendered.Body)
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Monthly income and expense per sub-category over one or more entities.
// @Tags reports
// @Produce json
// @Produce html
// @Produce application/pdf
// @Param month query string true "Month (YYYY-MM)"
// @Param entities query string false "Comma separated entity codes; defaults to every permitted entity"
// @Param format query string false "json, html or pdf" default(json)
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 501 {object} ErrorResponse "PDF rendering not configured"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var q dto.ProfitAndLossQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return
	}
	entities := splitEntities(q.Entities)
	logger.Info("Generating profit and loss report", slog.String("month", q.Month), slog.String("format", string(q.Format)))

	if q.Format == dto.FormatHTML || q.Format == dto.FormatPDF {
		rendered, err := h.reportingService.RenderProfitAndLoss(c.Request.Context(), q.Month, entities, q.Format == dto.FormatPDF, userID)
		if err != nil {
			respondError(c, logger, err, "Failed to render profit and loss report")
			return
		}
		writeRendered(c, rendered)
		return
	}

	report, diags, err := h.reportingService.ProfitAndLoss(c.Request.Context(), q.Month, entities, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report, diags))
}

// getPettyCashDaily godoc
// @Summary Petty-cash day print
// @Description The day's petty-cash ledger in print form.
// @Tags reports
// @Produce json
// @Produce html
// @Produce application/pdf
// @Param entity query string true "Entity code"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param format query string false "json, html or pdf" default(json)
// @Success 200 {object} dto.DailyLedgerResponse
// @Failure 501 {object} ErrorResponse "PDF rendering not configured"
// @Security BearerAuth
// @Router /reports/petty-cash/daily [get]
func (h *reportingHandler) getPettyCashDaily(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var q dto.PettyCashDailyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, logger, err)
		return
	}

	if q.Format == dto.FormatHTML || q.Format == dto.FormatPDF {
		rendered, err := h.reportingService.RenderPettyCashDaily(c.Request.Context(), q.Entity, q.Date, q.Format == dto.FormatPDF, userID)
		if err != nil {
			respondError(c, logger, err, "Failed to render petty-cash print")
			return
		}
		writeRendered(c, rendered)
		return
	}

	ledger, diags, err := h.reportingService.PettyCashDaily(c.Request.Context(), q.Entity, q.Date, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate petty-cash print")
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyLedgerResponse(*ledger, diags, true))
}
