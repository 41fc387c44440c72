package contracts

import "context"

type TransactionManager interface {
	// WithinTransaction runs fn with a context that carries one database
	// transaction. fn's error rolls everything back.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
