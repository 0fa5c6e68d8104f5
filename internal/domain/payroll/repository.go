package payroll

import "context"

type SalaryRecordRepository interface {
	Create(ctx context.Context, record SalaryRecord) (SalaryRecord, error)
	GetByID(ctx context.Context, id string) (SalaryRecord, error)
	// List returns one page, newest first, plus the total count.
	List(ctx context.Context, filter SalaryRecordFilter) ([]SalaryRecord, int64, error)
	ListApproved(ctx context.Context) ([]SalaryRecord, error)
	// Approve only flips unapproved records and returns ErrSalaryRecordAlreadyApproved otherwise.
	Approve(ctx context.Context, id, approvedBy string) error
}

type AdvanceRequestRepository interface {
	Create(ctx context.Context, req AdvanceRequest) (AdvanceRequest, error)
	GetByID(ctx context.Context, id string) (AdvanceRequest, error)
	List(ctx context.Context, filter AdvanceRequestFilter) ([]AdvanceRequest, int64, error)
	// UpdateStatus only moves pending requests and returns ErrAdvanceRequestAlreadyProcessed otherwise.
	UpdateStatus(ctx context.Context, id string, status AdvanceStatus, processedBy string) error
	CountByStatus(ctx context.Context, status AdvanceStatus) (int64, error)
}
