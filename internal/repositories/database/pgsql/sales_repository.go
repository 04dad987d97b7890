package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	"github.com/SscSPs/kasbook/internal/models"
	"github.com/SscSPs/kasbook/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const salesEntryColumns = `entry_id, entry_date, entity, amount, description, payment_method,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSalesRepository struct {
	BaseRepository
}

func newPgxSalesRepository(pool *pgxpool.Pool, loc *time.Location) *PgxSalesRepository {
	return &PgxSalesRepository{BaseRepository: BaseRepository{Pool: pool, Location: loc}}
}

var _ portsrepo.SalesRepositoryFacade = (*PgxSalesRepository)(nil)

func (r *PgxSalesRepository) FindSalesEntryByID(ctx context.Context, entryID string) (*domain.SalesEntry, error) {
	query := `SELECT ` + salesEntryColumns + ` FROM sales_entries WHERE entry_id = $1`
	rows, err := r.db(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, mapPgError(err, "failed to find sales entry "+entryID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SalesEntry])
	if err != nil {
		return nil, mapPgError(err, "failed to find sales entry "+entryID)
	}
	entry := mapping.ToDomainSalesEntry(m, r.Location)
	return &entry, nil
}

func (r *PgxSalesRepository) ListSalesEntries(ctx context.Context, entity domain.EntityCode, from, to time.Time) ([]domain.SalesEntry, error) {
	query := `SELECT ` + salesEntryColumns + ` FROM sales_entries
		WHERE entity = $1 AND entry_date >= $2::date AND entry_date < $3::date
		ORDER BY entry_date, created_at, entry_id`
	rows, err := r.db(ctx).Query(ctx, query, string(entity),
		mapping.DateParam(from, r.Location), mapping.DateParam(to, r.Location))
	if err != nil {
		return nil, mapPgError(err, "failed to list sales entries")
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SalesEntry])
	if err != nil {
		return nil, mapPgError(err, "failed to scan sales entries")
	}
	return mapping.ToDomainSalesEntrySlice(entries, r.Location), nil
}

func (r *PgxSalesRepository) SaveSalesEntry(ctx context.Context, entry domain.SalesEntry) error {
	m := mapping.ToModelSalesEntry(entry)
	query := `INSERT INTO sales_entries (` + salesEntryColumns + `)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, mapping.DateParam(m.EntryDate, r.Location), m.Entity, m.Amount, m.Description, m.PaymentMethod,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save sales entry "+entry.ID)
	}
	return nil
}

func (r *PgxSalesRepository) UpdateSalesEntry(ctx context.Context, entry domain.SalesEntry) error {
	m := mapping.ToModelSalesEntry(entry)
	query := `UPDATE sales_entries SET
			entry_date = $2::date, amount = $3, description = $4, payment_method = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, mapping.DateParam(m.EntryDate, r.Location), m.Amount, m.Description, m.PaymentMethod,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update sales entry "+entry.ID)
	}
	return expectOneRow(tag)
}

func (r *PgxSalesRepository) DeleteSalesEntry(ctx context.Context, entryID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM sales_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		return mapPgError(err, "failed to delete sales entry "+entryID)
	}
	return expectOneRow(tag)
}
