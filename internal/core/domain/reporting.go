package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one sub-category line of the profit/loss report.
type CategoryTotal struct {
	SubCategoryID int64           `json:"subCategoryID"`
	Name          string          `json:"name"`
	SortOrder     int             `json:"sortOrder"`
	Total         decimal.Decimal `json:"total"`
}

// ProfitAndLossReport represents a monthly profit and loss report over a set of entities.
type ProfitAndLossReport struct {
	Month        YearMonth       `json:"-"`
	Entities     []EntityCode    `json:"entities"`
	Income       []CategoryTotal `json:"income"`
	Expense      []CategoryTotal `json:"expense"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
	IsLoss       bool            `json:"isLoss"`
}
