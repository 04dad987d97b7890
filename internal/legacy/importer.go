package legacy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// Summary describes an import run.
type Summary struct {
	Rows          int
	Transactions  int
	CarryForwards int
	Pending       int
	Errors        []RowError
	DryRun        bool
}

// Importer loads a legacy export into the petty-cash ledger.
type Importer struct {
	txManager  portsrepo.TransactionManager
	ledgerRepo portsrepo.LedgerEntryWriter
	entities   domain.EntitySet
	loc        *time.Location
	logger     *slog.Logger
	now        func() time.Time
}

// NewImporter creates an Importer accepting rows for entities only.
func NewImporter(
	txManager portsrepo.TransactionManager,
	ledgerRepo portsrepo.LedgerEntryWriter,
	entities domain.EntitySet,
	loc *time.Location,
	logger *slog.Logger,
) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		txManager:  txManager,
		ledgerRepo: ledgerRepo,
		entities:   entities,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Import parses r and inserts every row in one transaction. Rows whose
// description carries the legacy "sisa saldo" phrase become carry-forward
// markers. Nothing is written when any line is invalid or dryRun is set.
func (im *Importer) Import(ctx context.Context, r io.Reader, userID string, dryRun bool) (Summary, error) {
	rows, rowErrs, err := Parse(r, im.loc)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Rows: len(rows) + len(rowErrs), DryRun: dryRun}
	now := im.now()
	entries := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		entry := im.toTransaction(row, userID, now)
		if err := entry.Validate(); err != nil {
			rowErrs = append(rowErrs, RowError{Line: row.Line, Err: err})
			continue
		}
		if !im.entities.Contains(entry.Entity) {
			rowErrs = append(rowErrs, RowError{Line: row.Line, Err: fmt.Errorf("unknown entity %q", entry.Entity)})
			continue
		}
		if entry.IsCarryForward() {
			summary.CarryForwards++
		} else {
			summary.Transactions++
		}
		if entry.ApprovalStatus == domain.StatusPending {
			summary.Pending++
		}
		entries = append(entries, entry)
	}
	summary.Errors = rowErrs

	if len(rowErrs) > 0 {
		im.logger.Warn("Legacy import rejected", slog.Int("invalid_lines", len(rowErrs)), slog.Int("rows", summary.Rows))
		return summary, fmt.Errorf("%w: %d invalid lines", apperrors.ErrValidation, len(rowErrs))
	}
	if dryRun {
		im.logger.Info("Legacy import dry run", slog.Int("rows", summary.Rows))
		return summary, nil
	}

	err = im.txManager.RunInTx(ctx, func(ctx context.Context) error {
		for _, entry := range entries {
			if err := im.ledgerRepo.SaveEntry(ctx, entry); err != nil {
				return fmt.Errorf("saving %s %s: %w", entry.Entity, entry.Date.Format(domain.DateLayout), err)
			}
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	im.logger.Info("Legacy import finished",
		slog.Int("transactions", summary.Transactions),
		slog.Int("carry_forwards", summary.CarryForwards),
		slog.Int("pending", summary.Pending))
	return summary, nil
}

func (im *Importer) toTransaction(row Row, userID string, now time.Time) domain.Transaction {
	kind := domain.KindTransaction
	if row.IsCarryForward() {
		kind = domain.KindCarryForward
	}
	entry := domain.Transaction{
		ID:             uuid.NewString(),
		Ledger:         domain.LedgerPettyCash,
		Date:           row.Date,
		Entity:         row.Entity,
		Direction:      row.Direction,
		Amount:         row.Amount,
		Description:    row.Description,
		Category:       row.Category,
		ApprovalStatus: row.Status,
		Kind:           kind,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if row.Status == domain.StatusApproved {
		entry.ApprovedBy = &userID
		entry.ApprovedAt = &now
	}
	return entry
}
