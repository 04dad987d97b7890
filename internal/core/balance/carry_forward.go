package balance

import (
	"fmt"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Opening is the balance a day starts with.
type Opening struct {
	Day         time.Time       `json:"day"`
	PreviousDay time.Time       `json:"previousDay"`
	Amount      decimal.Decimal `json:"amount"`
	Markers     int             `json:"markers"`
	MarkerIDs   []string        `json:"markerIDs,omitempty"`
}

// Missing reports that no carry-forward marker opened the day. The amount is
// then zero, but unlike a marker carrying zero it signals a gap in the chain.
func (o Opening) Missing() bool {
	return o.Markers == 0
}

// OpeningBalance resolves the balance entity starts day with. A marker is
// stored on the day it opens and carries the closing balance of the previous
// day. Approved inbound markers are summed; if several exist they all count.
// When none exists the opening is zero and a MissingCarryForward diagnostic is
// returned. Earlier days are not searched.
func (c *Calculator) OpeningBalance(txns []domain.Transaction, entity domain.EntityCode, day time.Time) (Opening, []Diagnostic) {
	valid, diags := c.partition(txns)
	opening := c.openingBalance(valid, entity, day)
	if opening.Missing() {
		diags = append(diags, missingMarker(opening, entity))
	}
	return opening, diags
}

func missingMarker(opening Opening, entity domain.EntityCode) Diagnostic {
	return missingCarryForward(fmt.Sprintf(
		"no carry-forward marker opens %s for %s (closing of %s); opening balance is 0",
		opening.Day.Format(domain.DateLayout), entity, opening.PreviousDay.Format(domain.DateLayout)))
}

func (c *Calculator) openingBalance(valid []domain.Transaction, entity domain.EntityCode, day time.Time) Opening {
	opening := Opening{
		Day:         domain.StartOfDay(day, c.loc),
		PreviousDay: domain.AddDays(day, -1, c.loc),
		Amount:      decimal.Zero,
	}
	for _, t := range valid {
		if !isOpeningMarker(t) || !c.onDay(t, entity, day) {
			continue
		}
		opening.Amount = opening.Amount.Add(t.Amount)
		opening.Markers++
		opening.MarkerIDs = append(opening.MarkerIDs, t.ID)
	}
	return opening
}

func isOpeningMarker(t domain.Transaction) bool {
	return t.IsCarryForward() && t.Direction == domain.DirectionIn && t.Counts()
}
