package repositories

import "context"

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions. Cascade deletes and the
// aggregate recompute that follows them must share one transaction, so
// services pass the transactional context down to every repository call.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
