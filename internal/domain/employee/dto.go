package employee

import (
	"time"

	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeFilter struct {
	IncludeGuests bool
	Role          *Role
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Role           Role            `json:"role"`
	Salary         decimal.Decimal `json:"salary"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	AdvanceBalance decimal.Decimal `json:"advance_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		Email:          e.Email,
		Phone:          e.Phone,
		Role:           e.Role,
		Salary:         e.Salary,
		CommissionRate: e.CommissionRate,
		AdvanceBalance: e.AdvanceBalance,
		CreatedAt:      e.CreatedAt,
	}
}

func ToProfile(e Employee) ProfileResponse {
	return ProfileResponse{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Phone: e.Phone,
		Role:  e.Role,
	}
}

// UpdateRoleRequest changes an employee's role. Setting misafir terminates the employee.
type UpdateRoleRequest struct {
	ID            string `json:"-"`
	Role          string `json:"role"`
	OwnerPassword string `json:"owner_password"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if _, err := ParseRole(r.Role); err != nil {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of patron, calisan, misafir"})
	}
	if validator.IsEmpty(r.OwnerPassword) {
		errs = append(errs, validator.ValidationError{Field: "owner_password", Message: "owner_password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateFinancialsRequest struct {
	ID             string       `json:"-"`
	Salary         money.Amount `json:"salary"`
	CommissionRate money.Amount `json:"commission_rate"`
	AdvanceBalance money.Amount `json:"advance_balance"`
	OwnerPassword  string       `json:"owner_password"`
}

func (r *UpdateFinancialsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Salary.Decimal().IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must be non-negative"})
	}
	rate := r.CommissionRate.Decimal()
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, validator.ValidationError{Field: "commission_rate", Message: "commission_rate must be between 0 and 100"})
	}
	if r.AdvanceBalance.Decimal().IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance_balance", Message: "advance_balance must be non-negative"})
	}
	if validator.IsEmpty(r.OwnerPassword) {
		errs = append(errs, validator.ValidationError{Field: "owner_password", Message: "owner_password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateFinancialsRequest) Financials() Financials {
	return Financials{
		Salary:         r.Salary.Decimal(),
		CommissionRate: r.CommissionRate.Decimal(),
		AdvanceBalance: r.AdvanceBalance.Decimal(),
	}
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if !validator.IsEmpty(r.Phone) && !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{Field: "current_password", Message: "current_password is required"})
	}
	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "new_password must be at least 8 characters long"})
	} else if len(r.NewPassword) > 72 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "new_password must not exceed 72 characters"})
	}
	if r.ConfirmPassword != r.NewPassword {
		errs = append(errs, validator.ValidationError{Field: "confirm_password", Message: "new_password and confirm_password do not match"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
