package mapping

import (
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/models"
)

func ToModelSalesEntry(d domain.SalesEntry) models.SalesEntry {
	return models.SalesEntry{
		EntryID:       d.ID,
		EntryDate:     d.Date,
		Entity:        string(d.Entity),
		Amount:        d.Amount,
		Description:   d.Description,
		PaymentMethod: string(d.PaymentMethod),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSalesEntry(m models.SalesEntry, loc *time.Location) domain.SalesEntry {
	return domain.SalesEntry{
		ID:            m.EntryID,
		Date:          AnchorDate(m.EntryDate, loc),
		Entity:        domain.EntityCode(m.Entity),
		Amount:        m.Amount,
		Description:   m.Description,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSalesEntrySlice(ms []models.SalesEntry, loc *time.Location) []domain.SalesEntry {
	ds := make([]domain.SalesEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSalesEntry(m, loc)
	}
	return ds
}
