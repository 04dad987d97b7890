package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesEntry records a day's sales for one entity.
type SalesEntry struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Entity        EntityCode      `json:"entity"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	AuditFields
}

// DailySales is one day of a monthly sales summary.
type DailySales struct {
	Date    time.Time       `json:"date"`
	Total   decimal.Decimal `json:"total"`
	Entries int             `json:"entries"`
}

// SalesSummary aggregates sales for an entity and month.
type SalesSummary struct {
	Entity  EntityCode      `json:"entity"`
	Month   YearMonth       `json:"-"`
	Days    []DailySales    `json:"days"`
	Cash    decimal.Decimal `json:"cash"`
	NonCash decimal.Decimal `json:"nonCash"`
	Total   decimal.Decimal `json:"total"`
}
