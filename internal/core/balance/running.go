package balance

import (
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Line pairs a row with the running balance after it.
type Line struct {
	Transaction domain.Transaction `json:"transaction"`
	Balance     decimal.Decimal    `json:"balance"`
	Counted     bool               `json:"counted"`
}

// WithRunningBalance folds dayTxns in the given order, starting from zero. The
// opening balance enters through its marker row like any other inflow. Rows
// that do not count (pending, rejected or invalid) are still emitted, paired
// with the unchanged balance.
func (c *Calculator) WithRunningBalance(dayTxns []domain.Transaction) ([]Line, []Diagnostic) {
	var diags []Diagnostic
	lines := make([]Line, 0, len(dayTxns))
	acc := decimal.Zero
	for _, t := range dayTxns {
		counted := t.Counts()
		if err := t.Validate(); err != nil {
			diags = append(diags, invalidInput(t.ID, err))
			counted = false
		} else if !c.entities.Contains(t.Entity) {
			diags = append(diags, invalidInput(t.ID, errUnknownEntity(t.Entity)))
			counted = false
		}
		if counted {
			acc = acc.Add(t.SignedAmount())
		}
		lines = append(lines, Line{Transaction: t, Balance: acc, Counted: counted})
	}
	return lines, diags
}
