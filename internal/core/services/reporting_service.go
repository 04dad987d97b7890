package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypePDF  = "application/pdf"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerEntryReader
	subCatRepo portsrepo.SubCategoryReader
	access     portssvc.AccessSvcFacade
	calc       *balance.Calculator
	templates  portssvc.ReportTemplates
	pdf        portssvc.PDFRenderer
	archive    portssvc.ReportArchive
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithPDFRenderer enables PDF output.
func WithPDFRenderer(renderer portssvc.PDFRenderer) ReportingServiceOption {
	return func(s *reportingService) {
		s.pdf = renderer
	}
}

// WithReportArchive stores a copy of every rendered PDF.
func WithReportArchive(archive portssvc.ReportArchive) ReportingServiceOption {
	return func(s *reportingService) {
		s.archive = archive
	}
}

// WithReportingBaseOptions applies base service options such as the clock.
func WithReportingBaseOptions(options ...ServiceOption) ReportingServiceOption {
	return func(s *reportingService) {
		s.apply(options)
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	ledgerRepo portsrepo.LedgerEntryReader,
	subCatRepo portsrepo.SubCategoryReader,
	access portssvc.AccessSvcFacade,
	calc *balance.Calculator,
	templates portssvc.ReportTemplates,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		ledgerRepo: ledgerRepo,
		subCatRepo: subCatRepo,
		access:     access,
		calc:       calc,
		templates:  templates,
	}
	svc.EntityAuthorizer = access

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// reportEntities resolves the requested entities. An empty request means every
// entity the user may report on.
func (s *reportingService) reportEntities(ctx context.Context, raw []string, userID string) ([]domain.EntityCode, error) {
	if len(raw) == 0 {
		entities, err := s.access.PermittedEntities(ctx, userID, domain.FeatureReports)
		if err != nil {
			return nil, err
		}
		if len(entities) == 0 {
			return nil, fmt.Errorf("%w: no entities available for reports", apperrors.ErrForbidden)
		}
		return entities, nil
	}

	seen := make(map[domain.EntityCode]bool, len(raw))
	entities := make([]domain.EntityCode, 0, len(raw))
	for _, r := range raw {
		entity, err := s.access.ParseEntity(r)
		if err != nil {
			return nil, err
		}
		if seen[entity] {
			continue
		}
		if err := s.AuthorizeEntity(ctx, userID, entity, domain.FeatureReports); err != nil {
			return nil, err
		}
		seen[entity] = true
		entities = append(entities, entity)
	}
	return entities, nil
}

// ProfitAndLoss builds the monthly profit/loss report from cash-flow rows.
func (s *reportingService) ProfitAndLoss(ctx context.Context, rawMonth string, rawEntities []string, userID string) (*domain.ProfitAndLossReport, []balance.Diagnostic, error) {
	if err := s.AuthorizeFeature(ctx, userID, domain.FeatureReports); err != nil {
		return nil, nil, err
	}
	month, err := parseMonth(rawMonth)
	if err != nil {
		return nil, nil, err
	}
	entities, err := s.reportEntities(ctx, rawEntities, userID)
	if err != nil {
		return nil, nil, err
	}

	from, to := month.Bounds(s.calc.Location())
	rows, err := s.ledgerRepo.ListEntriesInRange(ctx, domain.LedgerCashFlow, entities, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load cash-flow rows for report", slog.String("month", month.String()))
		return nil, nil, err
	}
	subCats, err := s.subCatRepo.ListSubCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load sub-categories for report")
		return nil, nil, err
	}

	report, diags := s.calc.ProfitAndLoss(rows, subCats, entities, month)
	s.LogDiagnostics(ctx, diags, slog.String("report", "profit_and_loss"), slog.String("month", month.String()))
	s.LogDebug(ctx, "Profit and loss computed",
		slog.String("month", month.String()),
		slog.Int("rows", len(rows)),
		slog.String("net", report.Net.String()))
	return &report, diags, nil
}

// PettyCashDaily returns the petty-cash day print data for one entity.
func (s *reportingService) PettyCashDaily(ctx context.Context, rawEntity, rawDay, userID string) (*balance.DailyLedger, []balance.Diagnostic, error) {
	entity, err := s.access.ParseEntity(rawEntity)
	if err != nil {
		return nil, nil, err
	}
	if err := s.AuthorizeEntity(ctx, userID, entity, domain.FeatureReports); err != nil {
		return nil, nil, err
	}
	day, err := parseDay(rawDay, s.calc.Location())
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.ledgerRepo.ListEntriesByDay(ctx, domain.LedgerPettyCash, entity, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to load petty-cash day for report", slog.String("entity", string(entity)))
		return nil, nil, err
	}
	ledger, diags := s.calc.DailyLedger(rows, entity, day)
	s.LogDiagnostics(ctx, diags, slog.String("report", "petty_cash_daily"), slog.String("entity", string(entity)))
	return &ledger, diags, nil
}

// RenderProfitAndLoss renders the report as HTML or PDF.
func (s *reportingService) RenderProfitAndLoss(ctx context.Context, rawMonth string, rawEntities []string, pdf bool, userID string) (*portssvc.RenderedReport, error) {
	if pdf && s.pdf == nil {
		return nil, apperrors.ErrRendererUnavailable
	}
	report, diags, err := s.ProfitAndLoss(ctx, rawMonth, rawEntities, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.templates.ProfitAndLossHTML(&buf, report, diags); err != nil {
		s.LogError(ctx, err, "Failed to render profit and loss")
		return nil, fmt.Errorf("failed to render profit and loss: %w", err)
	}

	codes := make([]string, len(report.Entities))
	for i, e := range report.Entities {
		codes[i] = string(e)
	}
	base := fmt.Sprintf("laba-rugi-%s-%s", report.Month, strings.Join(codes, "-"))
	return s.finish(ctx, buf.Bytes(), pdf, base, "profit-and-loss/"+report.Month.String())
}

// RenderPettyCashDaily renders the day print as HTML or PDF.
func (s *reportingService) RenderPettyCashDaily(ctx context.Context, rawEntity, rawDay string, pdf bool, userID string) (*portssvc.RenderedReport, error) {
	if pdf && s.pdf == nil {
		return nil, apperrors.ErrRendererUnavailable
	}
	ledger, diags, err := s.PettyCashDaily(ctx, rawEntity, rawDay, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.templates.PettyCashDailyHTML(&buf, ledger, diags); err != nil {
		s.LogError(ctx, err, "Failed to render petty-cash day")
		return nil, fmt.Errorf("failed to render petty-cash day: %w", err)
	}

	day := ledger.Day.Format(domain.DateLayout)
	base := fmt.Sprintf("kas-kecil-%s-%s", ledger.Entity, day)
	return s.finish(ctx, buf.Bytes(), pdf, base, "petty-cash/"+string(ledger.Entity))
}

// finish converts to PDF when asked and archives the PDF. An archive failure
// is logged; the caller still gets the document.
func (s *reportingService) finish(ctx context.Context, html []byte, pdf bool, base, folder string) (*portssvc.RenderedReport, error) {
	if !pdf {
		return &portssvc.RenderedReport{ContentType: contentTypeHTML, Filename: base + ".html", Body: html}, nil
	}

	body, err := s.pdf.RenderPDF(ctx, html)
	if err != nil {
		s.LogError(ctx, err, "Failed to render PDF", slog.String("document", base))
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	rendered := &portssvc.RenderedReport{ContentType: contentTypePDF, Filename: base + ".pdf", Body: body}

	if s.archive != nil {
		key := fmt.Sprintf("reports/%s/%s-%s.pdf", folder, base, s.Now().UTC().Format("20060102T150405Z"))
		if err := s.archive.Store(ctx, key, contentTypePDF, body); err != nil {
			s.LogError(ctx, err, "Failed to archive report", slog.String("key", key))
		} else {
			rendered.ArchiveKey = key
			s.LogInfo(ctx, "Report archived", slog.String("key", key))
		}
	}
	return rendered, nil
}
