package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto dbPool. DATE columns
// are read back as calendar days in loc.
func NewRepositoryProvider(dbPool *pgxpool.Pool, loc *time.Location) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       newPgxTxManager(dbPool),
		LedgerRepo:      newPgxLedgerRepository(dbPool, loc),
		SalesRepo:       newPgxSalesRepository(dbPool, loc),
		CategoryRepo:    newPgxCategoryRepository(dbPool),
		SubCategoryRepo: newPgxSubCategoryRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		RoleRepo:        newPgxRoleRepository(dbPool),
	}
}
