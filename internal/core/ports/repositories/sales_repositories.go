package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// SalesReader defines read operations for sales entries
type SalesReader interface {
	FindSalesEntryByID(ctx context.Context, entryID string) (*domain.SalesEntry, error)

	// ListSalesEntries returns entity's sales dated in [from, to), ordered by date.
	ListSalesEntries(ctx context.Context, entity domain.EntityCode, from, to time.Time) ([]domain.SalesEntry, error)
}

// SalesWriter defines write operations for sales entries
type SalesWriter interface {
	SaveSalesEntry(ctx context.Context, entry domain.SalesEntry) error
	UpdateSalesEntry(ctx context.Context, entry domain.SalesEntry) error
	DeleteSalesEntry(ctx context.Context, entryID string) error
}

// SalesRepositoryFacade combines all sales repository interfaces
type SalesRepositoryFacade interface {
	SalesReader
	SalesWriter
}
