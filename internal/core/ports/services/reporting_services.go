package services

import (
	"context"
	"io"

	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
)

// RenderedReport is a printable report body.
type RenderedReport struct {
	ContentType string
	Filename    string
	Body        []byte
	ArchiveKey  string // set when a PDF copy was archived
}

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// ProfitAndLoss builds the monthly report over the given entities; an empty
	// list means every entity the user may report on.
	ProfitAndLoss(ctx context.Context, month string, entities []string, userID string) (*domain.ProfitAndLossReport, []balance.Diagnostic, error)

	// PettyCashDaily returns the petty-cash day print data for one entity.
	PettyCashDaily(ctx context.Context, entity, day, userID string) (*balance.DailyLedger, []balance.Diagnostic, error)

	// RenderProfitAndLoss renders the report as HTML or PDF.
	RenderProfitAndLoss(ctx context.Context, month string, entities []string, pdf bool, userID string) (*RenderedReport, error)

	// RenderPettyCashDaily renders the day print as HTML or PDF.
	RenderPettyCashDaily(ctx context.Context, entity, day string, pdf bool, userID string) (*RenderedReport, error)
}

// ReportTemplates renders report data as printable HTML.
type ReportTemplates interface {
	ProfitAndLossHTML(w io.Writer, report *domain.ProfitAndLossReport, diags []balance.Diagnostic) error
	PettyCashDailyHTML(w io.Writer, ledger *balance.DailyLedger, diags []balance.Diagnostic) error
}

// PDFRenderer converts a printable HTML document into PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ReportArchive keeps copies of rendered reports.
type ReportArchive interface {
	Store(ctx context.Context, key, contentType string, body []byte) error
}
