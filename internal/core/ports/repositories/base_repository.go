package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// WithinTransaction runs fn in a transaction carried by the context passed to fn.
	// Repository calls made with that context join the transaction. A nested call
	// joins the enclosing transaction instead of starting a new one.
	// The transaction commits if fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// AfterCommit runs fn once the outermost transaction carried by ctx has committed.
	// fn is dropped if that transaction rolls back. Outside a transaction fn runs at once.
	AfterCommit(ctx context.Context, fn func())
}
