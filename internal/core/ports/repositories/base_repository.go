package repositories

import (
	"context"
)

// TxFunc is the body of a unit of work. Every repository in repos is bound
// to the same transaction.
type TxFunc func(ctx context.Context, repos Repositories) error

// UnitOfWork runs a function inside one database transaction.
type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back everything fn did
	// otherwise. Lock waits inside the transaction are bounded by the
	// configured lock timeout.
	WithinTx(ctx context.Context, fn TxFunc) error
}
