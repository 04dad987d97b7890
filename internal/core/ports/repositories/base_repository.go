package repositories

import (
	"context"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// RunInTx runs fn inside a single database transaction. Repository calls
	// made with the context passed to fn join that transaction. The
	// transaction is committed when fn returns nil and rolled back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
