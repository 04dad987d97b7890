package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table. Petty-cash and cash-flow
// rows share the table and are told apart by Ledger.
type LedgerEntry struct {
	EntryID        string          `db:"entry_id"`
	Ledger         string          `db:"ledger"`
	EntryDate      time.Time       `db:"entry_date"` // DATE column, UTC midnight when scanned
	Entity         string          `db:"entity"`
	Direction      string          `db:"direction"`
	Amount         decimal.Decimal `db:"amount"`
	Description    string          `db:"description"`
	Category       *string         `db:"category"`        // Nullable
	SubCategoryID  *int64          `db:"sub_category_id"` // Nullable
	ApprovalStatus *string         `db:"approval_status"` // NULL for cash-flow rows
	PaymentMethod  *string         `db:"payment_method"`  // Nullable
	RecordKind     string          `db:"record_kind"`
	ApprovedBy     *string         `db:"approved_by"`
	ApprovedAt     *time.Time      `db:"approved_at"`
	AuditFields
}
