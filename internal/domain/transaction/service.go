package transaction

import "context"

type TransactionService interface {
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]TransactionResponse, error)
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (TransactionResponse, error)
	CancelTransaction(ctx context.Context, id string) (TransactionResponse, error)
}
