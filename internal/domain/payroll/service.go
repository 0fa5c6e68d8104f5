package payroll

import "context"

type PayrollService interface {
	ListSalaryRecords(ctx context.Context, filter SalaryRecordFilter) (ListSalaryRecordResponse, error)
	CreateSalaryRecord(ctx context.Context, req CreateSalaryRecordRequest) (SalaryRecordResponse, error)
	ApproveSalaryRecord(ctx context.Context, id string) (SalaryRecordResponse, error)

	ListAdvanceRequests(ctx context.Context, filter AdvanceRequestFilter) (ListAdvanceRequestResponse, error)
	PendingAdvanceCount(ctx context.Context) (PendingCountResponse, error)
	CreateMyAdvanceRequest(ctx context.Context, req CreateAdvanceRequestRequest) (AdvanceRequestResponse, error)
	ApproveAdvanceRequest(ctx context.Context, id string) (AdvanceRequestResponse, error)
	RejectAdvanceRequest(ctx context.Context, id string) (AdvanceRequestResponse, error)
}
