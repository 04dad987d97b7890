package balance

import (
	"fmt"
	"sort"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProfitAndLoss groups cash-flow rows of the given entities within month by
// sub-category and splits the groups into income and expense, each sorted by
// SortOrder then ID. Rows whose sub-category cannot be resolved are dropped
// with an UnresolvedReference diagnostic. A negative Net is a loss, not an error.
func (c *Calculator) ProfitAndLoss(txns []domain.Transaction, subCats []domain.SubCategory, entities []domain.EntityCode, month domain.YearMonth) (domain.ProfitAndLossReport, []Diagnostic) {
	valid, diags := c.partition(txns)

	wanted := domain.NewEntitySet(entities...)
	byID := make(map[int64]domain.SubCategory, len(subCats))
	for _, sc := range subCats {
		byID[sc.ID] = sc
	}

	totals := make(map[int64]decimal.Decimal)
	for _, t := range valid {
		if t.Ledger != domain.LedgerCashFlow {
			diags = append(diags, invalidInput(t.ID, fmt.Errorf("%s entry is not part of the profit and loss report", t.Ledger)))
			continue
		}
		if !wanted.Contains(t.Entity) || !month.Contains(t.Date, c.loc) {
			continue
		}
		if t.SubCategoryID == nil {
			diags = append(diags, unresolvedReference(t.ID, "cash-flow entry has no sub-category"))
			continue
		}
		sc, ok := byID[*t.SubCategoryID]
		if !ok {
			diags = append(diags, unresolvedReference(t.ID, fmt.Sprintf("sub-category %d does not exist", *t.SubCategoryID)))
			continue
		}
		if !sc.Kind.Valid() {
			diags = append(diags, unresolvedReference(t.ID, fmt.Sprintf("sub-category %d has unknown kind %q", sc.ID, sc.Kind)))
			continue
		}
		totals[sc.ID] = totals[sc.ID].Add(t.Amount)
	}

	report := domain.ProfitAndLossReport{
		Month:        month,
		Entities:     wanted.Codes(),
		Income:       []domain.CategoryTotal{},
		Expense:      []domain.CategoryTotal{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for id, total := range totals {
		sc := byID[id]
		line := domain.CategoryTotal{SubCategoryID: sc.ID, Name: sc.Name, SortOrder: sc.SortOrder, Total: total}
		if sc.Kind == domain.KindIncome {
			report.Income = append(report.Income, line)
			report.TotalIncome = report.TotalIncome.Add(total)
		} else {
			report.Expense = append(report.Expense, line)
			report.TotalExpense = report.TotalExpense.Add(total)
		}
	}
	sortCategoryTotals(report.Income)
	sortCategoryTotals(report.Expense)

	report.Net = report.TotalIncome.Sub(report.TotalExpense)
	report.IsLoss = report.Net.IsNegative()
	return report, diags
}

func sortCategoryTotals(lines []domain.CategoryTotal) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].SortOrder != lines[j].SortOrder {
			return lines[i].SortOrder < lines[j].SortOrder
		}
		return lines[i].SubCategoryID < lines[j].SubCategoryID
	})
}
