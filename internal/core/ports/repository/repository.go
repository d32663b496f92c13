package repository

import "context"

// TxRunner executes a function inside a single storage transaction. Repository
// calls made with the context passed to fn join that transaction. The
// in-memory backend satisfies this with plain sequential execution.
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
