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

const ledgerEntryColumns = `entry_id, ledger, entry_date, entity, direction, amount, description,
	category, sub_category_id, approval_status, payment_method, record_kind, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by`

// Rows within a day are returned markers first, then in creation order.
const ledgerEntryOrder = ` ORDER BY entry_date, (record_kind = 'carry_forward') DESC, created_at, entry_id`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool, loc *time.Location) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool, Location: loc}}
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) collect(rows pgx.Rows, err error, msg string) ([]domain.Transaction, error) {
	if err != nil {
		return nil, mapPgError(err, msg)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, mapPgError(err, msg)
	}
	return mapping.ToDomainLedgerEntrySlice(entries, r.Location), nil
}

func entityStrings(entities []domain.EntityCode) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = string(e)
	}
	return out
}

// FindEntryByID retrieves a row of either ledger.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Transaction, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1`
	rows, err := r.db(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, mapPgError(err, "failed to find ledger entry "+entryID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, mapPgError(err, "failed to find ledger entry "+entryID)
	}
	entry := mapping.ToDomainLedgerEntry(m, r.Location)
	return &entry, nil
}

func (r *PgxLedgerRepository) ListEntriesByDay(ctx context.Context, ledger domain.Ledger, entity domain.EntityCode, day time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
		WHERE ledger = $1 AND entity = $2 AND entry_date = $3::date` + ledgerEntryOrder
	rows, err := r.db(ctx).Query(ctx, query, string(ledger), string(entity), mapping.DateParam(day, r.Location))
	return r.collect(rows, err, "failed to list ledger entries for day")
}

func (r *PgxLedgerRepository) ListEntriesInRange(ctx context.Context, ledger domain.Ledger, entities []domain.EntityCode, from, to time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
		WHERE ledger = $1 AND entity = ANY($2) AND entry_date >= $3::date AND entry_date < $4::date` + ledgerEntryOrder
	rows, err := r.db(ctx).Query(ctx, query,
		string(ledger),
		entityStrings(entities),
		mapping.DateParam(from, r.Location),
		mapping.DateParam(to, r.Location),
	)
	return r.collect(rows, err, "failed to list ledger entries in range")
}

func (r *PgxLedgerRepository) ListPendingEntries(ctx context.Context, entities []domain.EntityCode) ([]domain.Transaction, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries
		WHERE ledger = 'petty_cash' AND approval_status = 'pending' AND entity = ANY($1)
		ORDER BY created_at, entry_id`
	rows, err := r.db(ctx).Query(ctx, query, entityStrings(entities))
	return r.collect(rows, err, "failed to list pending entries")
}

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.Transaction) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, m.Ledger, mapping.DateParam(m.EntryDate, r.Location), m.Entity, m.Direction, m.Amount, m.Description,
		m.Category, m.SubCategoryID, m.ApprovalStatus, m.PaymentMethod, m.RecordKind, m.ApprovedBy, m.ApprovedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save ledger entry "+entry.ID)
	}
	return nil
}

// UpdateEntry rewrites the mutable columns. Ledger, entity, kind and creation
// audit fields never change after insert.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.Transaction) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `UPDATE ledger_entries SET
			entry_date = $2::date, direction = $3, amount = $4, description = $5, category = $6,
			sub_category_id = $7, approval_status = $8, payment_method = $9, approved_by = $10,
			approved_at = $11, last_updated_at = $12, last_updated_by = $13
		WHERE entry_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.EntryID, mapping.DateParam(m.EntryDate, r.Location), m.Direction, m.Amount, m.Description, m.Category,
		m.SubCategoryID, m.ApprovalStatus, m.PaymentMethod, m.ApprovedBy,
		m.ApprovedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update ledger entry "+entry.ID)
	}
	return expectOneRow(tag)
}

func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		return mapPgError(err, "failed to delete ledger entry "+entryID)
	}
	return expectOneRow(tag)
}
