package transaction

import "context"

type TransactionRepository interface {
	Create(ctx context.Context, t Transaction) (Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	// List returns transactions newest first.
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	// Cancel flags a live transaction; an already canceled one yields ErrTransactionAlreadyCanceled.
	Cancel(ctx context.Context, id string) error
}
