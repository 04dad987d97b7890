package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesEntry is a row of the sales_entries table.
type SalesEntry struct {
	EntryID       string          `db:"entry_id"`
	EntryDate     time.Time       `db:"entry_date"`
	Entity        string          `db:"entity"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	PaymentMethod string          `db:"payment_method"`
	AuditFields
}
