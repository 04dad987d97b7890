package balance

import (
	"fmt"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// Calculator evaluates ledger rows against a fixed entity set and the
// location that defines a calendar day. It is immutable after construction.
type Calculator struct {
	entities domain.EntitySet
	loc      *time.Location
}

// NewCalculator returns a Calculator for the given entity codes. A nil loc means time.Local.
func NewCalculator(entities []domain.EntityCode, loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{
		entities: domain.NewEntitySet(entities...),
		loc:      loc,
	}
}

// Location returns the calendar location days are evaluated in.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Entities returns the known entity codes, sorted.
func (c *Calculator) Entities() []domain.EntityCode {
	return c.entities.Codes()
}

// KnowsEntity reports whether code belongs to the configured entity set.
func (c *Calculator) KnowsEntity(code domain.EntityCode) bool {
	return c.entities.Contains(code)
}

// partition splits rows into structurally valid ones and diagnostics for the rest.
func (c *Calculator) partition(txns []domain.Transaction) ([]domain.Transaction, []Diagnostic) {
	valid := make([]domain.Transaction, 0, len(txns))
	var diags []Diagnostic
	for _, t := range txns {
		if err := t.Validate(); err != nil {
			diags = append(diags, invalidInput(t.ID, err))
			continue
		}
		if !c.entities.Contains(t.Entity) {
			diags = append(diags, invalidInput(t.ID, errUnknownEntity(t.Entity)))
			continue
		}
		valid = append(valid, t)
	}
	return valid, diags
}

func (c *Calculator) onDay(t domain.Transaction, entity domain.EntityCode, day time.Time) bool {
	return t.Entity == entity && domain.SameDay(t.Date, day, c.loc)
}

func errUnknownEntity(code domain.EntityCode) error {
	return fmt.Errorf("unknown entity %q", code)
}
