package dto

import (
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportFormat selects the representation of a report.
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatHTML ReportFormat = "html"
	FormatPDF  ReportFormat = "pdf"
)

// ProfitAndLossQuery selects a month and optionally a comma separated entity list.
type ProfitAndLossQuery struct {
	Month    string       `form:"month" binding:"required"`
	Entities string       `form:"entities"`
	Format   ReportFormat `form:"format,default=json" binding:"omitempty,oneof=json html pdf"`
}

// PettyCashDailyQuery selects the petty-cash print of one entity and day.
type PettyCashDailyQuery struct {
	Entity string       `form:"entity" binding:"required"`
	Date   string       `form:"date" binding:"required"`
	Format ReportFormat `form:"format,default=json" binding:"omitempty,oneof=json html pdf"`
}

// CategoryTotalResponse is one sub-category line of the report.
type CategoryTotalResponse struct {
	SubCategoryID int64           `json:"subCategoryID"`
	Name          string          `json:"name"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	Month        string                  `json:"month"`
	Entities     []domain.EntityCode     `json:"entities"`
	Income       []CategoryTotalResponse `json:"income"`
	Expense      []CategoryTotalResponse `json:"expense"`
	TotalIncome  decimal.Decimal         `json:"totalIncome" swaggertype:"string"`
	TotalExpense decimal.Decimal         `json:"totalExpense" swaggertype:"string"`
	Net          decimal.Decimal         `json:"net" swaggertype:"string"`
	IsLoss       bool                    `json:"isLoss"`
	Diagnostics  []DiagnosticResponse    `json:"diagnostics"`
}

func toCategoryTotals(lines []domain.CategoryTotal) []CategoryTotalResponse {
	res := make([]CategoryTotalResponse, len(lines))
	for i, l := range lines {
		res[i] = CategoryTotalResponse{SubCategoryID: l.SubCategoryID, Name: l.Name, Total: l.Total}
	}
	return res
}

// ToProfitAndLossResponse converts a domain report and its diagnostics to the response DTO
func ToProfitAndLossResponse(report *domain.ProfitAndLossReport, diags []balance.Diagnostic) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		Month:        report.Month.String(),
		Entities:     report.Entities,
		Income:       toCategoryTotals(report.Income),
		Expense:      toCategoryTotals(report.Expense),
		TotalIncome:  report.TotalIncome,
		TotalExpense: report.TotalExpense,
		Net:          report.Net,
		IsLoss:       report.IsLoss,
		Diagnostics:  ToDiagnosticResponses(diags),
	}
}
