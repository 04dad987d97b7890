// Package printing turns reports into printable HTML and PDF documents.
package printing

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	profitAndLossTemplate  = "profit_and_loss.html"
	pettyCashDailyTemplate = "petty_cash_daily.html"
)

// Templates renders the print layouts of the reports.
type Templates struct {
	tmpl        *template.Template
	companyName string
}

// TemplatesOption configures Templates.
type TemplatesOption func(*Templates)

// WithCompanyName sets the heading printed above every report.
func WithCompanyName(name string) TemplatesOption {
	return func(t *Templates) {
		t.companyName = name
	}
}

// NewTemplates parses the embedded print layouts.
func NewTemplates(opts ...TemplatesOption) (*Templates, error) {
	funcs := template.FuncMap{
		"rupiah":  formatRupiah,
		"day":     formatDay,
		"longDay": formatLongDay,
		"title":   titleCase,
	}
	tmpl, err := template.New("reports").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse print templates: %w", err)
	}
	t := &Templates{tmpl: tmpl, companyName: "Kasbook"}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

var _ portssvc.ReportTemplates = (*Templates)(nil)

type diagnosticView struct {
	Kind    string
	Message string
}

func toDiagnosticViews(diags []balance.Diagnostic) []diagnosticView {
	views := make([]diagnosticView, len(diags))
	for i, d := range diags {
		views[i] = diagnosticView{Kind: string(d.Kind), Message: d.Message}
	}
	return views
}

type profitAndLossView struct {
	Company     string
	Period      string
	Entities    string
	Report      *domain.ProfitAndLossReport
	Diagnostics []diagnosticView
}

// ProfitAndLossHTML writes the "Laba Rugi" print of report.
func (t *Templates) ProfitAndLossHTML(w io.Writer, report *domain.ProfitAndLossReport, diags []balance.Diagnostic) error {
	codes := make([]string, len(report.Entities))
	for i, e := range report.Entities {
		codes[i] = string(e)
	}
	view := profitAndLossView{
		Company:     t.companyName,
		Period:      formatMonth(report.Month.Year, report.Month.Month),
		Entities:    strings.Join(codes, ", "),
		Report:      report,
		Diagnostics: toDiagnosticViews(diags),
	}
	return t.tmpl.ExecuteTemplate(w, profitAndLossTemplate, view)
}

type ledgerRowView struct {
	Day         string
	Description string
	Category    string
	In          string
	Out         string
	Balance     string
	Status      string
	Marker      bool
	Counted     bool
}

type pettyCashDailyView struct {
	Company        string
	Entity         string
	Day            string
	PreviousDay    string
	Opening        string
	OpeningMissing bool
	Rows           []ledgerRowView
	TotalIn        string
	TotalOut       string
	Closing        string
	Diagnostics    []diagnosticView
}

var statusLabels = map[domain.ApprovalStatus]string{
	domain.StatusPending:  "Menunggu",
	domain.StatusApproved: "Disetujui",
	domain.StatusRejected: "Ditolak",
}

// PettyCashDailyHTML writes the "Kas Kecil" day print of ledger.
func (t *Templates) PettyCashDailyHTML(w io.Writer, ledger *balance.DailyLedger, diags []balance.Diagnostic) error {
	rows := make([]ledgerRowView, len(ledger.Lines))
	for i, line := range ledger.Lines {
		txn := line.Transaction
		row := ledgerRowView{
			Day:         formatDay(txn.Date),
			Description: txn.Description,
			Category:    txn.Category,
			Balance:     formatRupiah(line.Balance),
			Status:      statusLabels[txn.ApprovalStatus],
			Marker:      txn.IsCarryForward(),
			Counted:     line.Counted,
		}
		if txn.Direction == domain.DirectionIn {
			row.In = formatRupiah(txn.Amount)
		} else {
			row.Out = formatRupiah(txn.Amount)
		}
		rows[i] = row
	}
	view := pettyCashDailyView{
		Company:        t.companyName,
		Entity:         string(ledger.Entity),
		Day:            formatLongDay(ledger.Day),
		PreviousDay:    formatDay(ledger.Opening.PreviousDay),
		Opening:        formatRupiah(ledger.Opening.Amount),
		OpeningMissing: ledger.Opening.Missing(),
		Rows:           rows,
		TotalIn:        formatRupiah(ledger.Totals.In),
		TotalOut:       formatRupiah(ledger.Totals.Out),
		Closing:        formatRupiah(ledger.Closing),
		Diagnostics:    toDiagnosticViews(diags),
	}
	return t.tmpl.ExecuteTemplate(w, pettyCashDailyTemplate, view)
}
