package mapping

import (
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/models"
)

// ToModelLedgerEntry converts a domain Transaction to a ledger_entries row.
func ToModelLedgerEntry(d domain.Transaction) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.ID,
		Ledger:         string(d.Ledger),
		EntryDate:      d.Date,
		Entity:         string(d.Entity),
		Direction:      string(d.Direction),
		Amount:         d.Amount,
		Description:    d.Description,
		Category:       optionalString(d.Category),
		SubCategoryID:  d.SubCategoryID,
		ApprovalStatus: optionalString(string(d.ApprovalStatus)),
		PaymentMethod:  optionalString(string(d.PaymentMethod)),
		RecordKind:     string(d.Kind),
		ApprovedBy:     d.ApprovedBy,
		ApprovedAt:     d.ApprovedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a ledger_entries row to a domain Transaction,
// anchoring the entry date in loc.
func ToDomainLedgerEntry(m models.LedgerEntry, loc *time.Location) domain.Transaction {
	return domain.Transaction{
		ID:             m.EntryID,
		Ledger:         domain.Ledger(m.Ledger),
		Date:           AnchorDate(m.EntryDate, loc),
		Entity:         domain.EntityCode(m.Entity),
		Direction:      domain.Direction(m.Direction),
		Amount:         m.Amount,
		Description:    m.Description,
		Category:       derefString(m.Category),
		SubCategoryID:  m.SubCategoryID,
		ApprovalStatus: domain.ApprovalStatus(derefString(m.ApprovalStatus)),
		PaymentMethod:  domain.PaymentMethod(derefString(m.PaymentMethod)),
		Kind:           domain.RecordKind(m.RecordKind),
		ApprovedBy:     m.ApprovedBy,
		ApprovedAt:     m.ApprovedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts rows to domain Transactions.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry, loc *time.Location) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m, loc)
	}
	return ds
}
