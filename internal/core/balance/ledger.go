package balance

import (
	"sort"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DailyLedger is everything a day view or day print needs for one entity.
type DailyLedger struct {
	Entity  domain.EntityCode `json:"entity"`
	Day     time.Time         `json:"day"`
	Opening Opening           `json:"opening"`
	Lines   []Line            `json:"lines"`
	Totals  Totals            `json:"totals"`
	Closing decimal.Decimal   `json:"closing"`
}

// DailyLedger selects entity's rows for day, orders them for display (markers
// first, then by creation time), attaches running balances and computes the
// day's totals. Closing equals the opening plus the day's net movement, which
// for a counted opening marker is also the last line's balance.
func (c *Calculator) DailyLedger(txns []domain.Transaction, entity domain.EntityCode, day time.Time) (DailyLedger, []Diagnostic) {
	valid, diags := c.partition(txns)

	var dayRows []domain.Transaction
	for _, t := range valid {
		if c.onDay(t, entity, day) {
			dayRows = append(dayRows, t)
		}
	}
	SortForDisplay(dayRows)

	opening := c.openingBalance(valid, entity, day)
	if opening.Missing() {
		diags = append(diags, missingMarker(opening, entity))
	}

	lines, lineDiags := c.WithRunningBalance(dayRows)
	diags = append(diags, lineDiags...)
	totals := c.dailyTotals(valid, entity, day)

	return DailyLedger{
		Entity:  entity,
		Day:     domain.StartOfDay(day, c.loc),
		Opening: opening,
		Lines:   lines,
		Totals:  totals,
		Closing: opening.Amount.Add(totals.Net),
	}, diags
}

// SortForDisplay orders one day's rows: carry-forward markers first, then by
// creation time, then by id so the order is total.
func SortForDisplay(rows []domain.Transaction) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.IsCarryForward() != b.IsCarryForward() {
			return a.IsCarryForward()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
