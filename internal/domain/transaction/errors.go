package transaction

import "errors"

var (
	ErrTransactionNotFound        = errors.New("transaction not found")
	ErrTransactionAlreadyCanceled = errors.New("transaction already canceled")
	ErrInvalidType                = errors.New("invalid transaction type")
)
