package ledger

import "context"

// LedgerService serves aggregates that are recomputed from storage on every call.
type LedgerService interface {
	Monthly(ctx context.Context) (MonthlyResponse, error)
	TransactionsInRange(ctx context.Context, req RangeRequest) (RangeResponse, error)
	Salaries(ctx context.Context) ([]SalarySummaryResponse, error)
}
