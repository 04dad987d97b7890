package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// LedgerEntryReader defines read operations for petty-cash and cash-flow rows.
// Every list returns the complete matching set.
type LedgerEntryReader interface {
	// FindEntryByID retrieves a row of either ledger.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Transaction, error)

	// ListEntriesByDay returns every row of the ledger for entity on the calendar
	// day containing day, carry-forward markers included.
	ListEntriesByDay(ctx context.Context, ledger domain.Ledger, entity domain.EntityCode, day time.Time) ([]domain.Transaction, error)

	// ListEntriesInRange returns rows of the given entities dated in [from, to).
	ListEntriesInRange(ctx context.Context, ledger domain.Ledger, entities []domain.EntityCode, from, to time.Time) ([]domain.Transaction, error)

	// ListPendingEntries returns pending petty-cash rows of the given entities, oldest first.
	ListPendingEntries(ctx context.Context, entities []domain.EntityCode) ([]domain.Transaction, error)
}

// LedgerEntryWriter defines write operations for ledger rows.
type LedgerEntryWriter interface {
	SaveEntry(ctx context.Context, entry domain.Transaction) error
	UpdateEntry(ctx context.Context, entry domain.Transaction) error
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerEntryRepositoryFacade combines all ledger repository interfaces
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
