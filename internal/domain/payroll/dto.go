package payroll

import (
	"time"

	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// ========== SALARY RECORD DTOs ==========

type SalaryRecordFilter struct {
	EmployeeID *string
	Type       *SalaryType
	Approved   *bool
	Page       int
	Limit      int
}

func (f *SalaryRecordFilter) Normalize() {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
}

func (f SalaryRecordFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type CreateSalaryRecordRequest struct {
	EmployeeID  string       `json:"employee_id"`
	Type        string       `json:"type"`
	Amount      money.Amount `json:"amount"`
	Description string       `json:"description"`
}

func (r *CreateSalaryRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, err := ParseSalaryType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be salary, bonus or advance"})
	}
	if !r.Amount.Decimal().IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
	}
	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryRecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Type         SalaryType      `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Approved     bool            `json:"approved"`
	Date         time.Time       `json:"date"`
	DateMillis   int64           `json:"date_millis"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
}

func ToSalaryRecordResponse(r SalaryRecord, employeeName string) SalaryRecordResponse {
	return SalaryRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: employeeName,
		Type:         r.Type,
		Amount:       r.Amount,
		Description:  r.Description,
		Approved:     r.Approved,
		Date:         r.Date,
		DateMillis:   timeutil.ToEpochMillis(r.Date),
		ApprovedAt:   r.ApprovedAt,
	}
}

type ListSalaryRecordResponse struct {
	Data       []SalaryRecordResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

// ========== ADVANCE REQUEST DTOs ==========

type AdvanceRequestFilter struct {
	EmployeeID *string
	Status     *AdvanceStatus
	Page       int
	Limit      int
}

func (f *AdvanceRequestFilter) Normalize() {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
}

func (f AdvanceRequestFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type CreateAdvanceRequestRequest struct {
	Amount money.Amount `json:"amount"`
	Reason string       `json:"reason"`
}

func (r *CreateAdvanceRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.Decimal().IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceRequestResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	Status          AdvanceStatus   `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedAtMillis int64           `json:"created_at_millis"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
}

func ToAdvanceRequestResponse(r AdvanceRequest, placeholder string) AdvanceRequestResponse {
	name := r.EmployeeName
	if name == "" {
		name = placeholder
	}
	return AdvanceRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    name,
		Amount:          r.Amount,
		Reason:          r.Reason,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		CreatedAtMillis: timeutil.ToEpochMillis(r.CreatedAt),
		ProcessedAt:     r.ProcessedAt,
	}
}

type ListAdvanceRequestResponse struct {
	Data       []AdvanceRequestResponse `json:"data"`
	TotalCount int64                    `json:"total_count"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
}

type PendingCountResponse struct {
	Pending int64 `json:"pending"`
}
