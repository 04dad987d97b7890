package balance

import (
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals is a day's movement: inflow, outflow and their difference.
type Totals struct {
	In  decimal.Decimal `json:"in"`
	Out decimal.Decimal `json:"out"`
	Net decimal.Decimal `json:"net"`
}

// DailyTotals sums the counting rows of entity on day. Carry-forward markers
// are excluded: they are the previous day's closing balance, not activity.
func (c *Calculator) DailyTotals(txns []domain.Transaction, entity domain.EntityCode, day time.Time) (Totals, []Diagnostic) {
	valid, diags := c.partition(txns)
	return c.dailyTotals(valid, entity, day), diags
}

func (c *Calculator) dailyTotals(valid []domain.Transaction, entity domain.EntityCode, day time.Time) Totals {
	in, out := decimal.Zero, decimal.Zero
	for _, t := range valid {
		if !c.onDay(t, entity, day) || !t.Counts() || t.IsCarryForward() {
			continue
		}
		if t.Direction == domain.DirectionIn {
			in = in.Add(t.Amount)
		} else {
			out = out.Add(t.Amount)
		}
	}
	return Totals{In: in, Out: out, Net: in.Sub(out)}
}
