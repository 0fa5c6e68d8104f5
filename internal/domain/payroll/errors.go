package payroll

import "errors"

var (
	ErrSalaryRecordNotFound           = errors.New("salary record not found")
	ErrSalaryRecordAlreadyApproved    = errors.New("salary record already approved")
	ErrAdvanceRequestNotFound         = errors.New("advance request not found")
	ErrAdvanceRequestAlreadyProcessed = errors.New("advance request already processed")
	ErrInvalidSalaryType              = errors.New("invalid salary record type")
	ErrInvalidAdvanceStatus           = errors.New("invalid advance request status")
)
