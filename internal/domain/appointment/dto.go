package appointment

import (
	"time"

	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
)

type AppointmentFilter struct {
	From       *time.Time
	To         *time.Time
	EmployeeID *string
	CustomerID *string
	Status     *Status
}

type CreateAppointmentRequest struct {
	CustomerID string              `json:"customer_id"`
	EmployeeID string              `json:"employee_id"`
	ServiceIDs []string            `json:"service_ids"`
	StartTime  timeutil.RawInstant `json:"start_time"`
	Notes      string              `json:"notes"`
}

// Validate runs before any repository call; a request failing here never reaches storage.
func (r *CreateAppointmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerID) {
		errs = append(errs, validator.ValidationError{Field: "customer_id", Message: "customer_id is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.StartTime.IsEmpty() {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time is required"})
	}
	if len(r.ServiceIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "service_ids", Message: "at least one service must be selected"})
	} else if validator.HasDuplicates(r.ServiceIDs) {
		errs = append(errs, validator.ValidationError{Field: "service_ids", Message: "service_ids must not contain duplicates"})
	} else {
		for _, id := range r.ServiceIDs {
			if validator.IsEmpty(id) {
				errs = append(errs, validator.ValidationError{Field: "service_ids", Message: "service_ids must not contain empty values"})
				break
			}
		}
	}
	if len(r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "notes must not exceed 2000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAppointmentRequest struct {
	ID        string              `json:"-"`
	StartTime timeutil.RawInstant `json:"start_time"`
	Notes     string              `json:"notes"`
}

func (r *UpdateAppointmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.StartTime.IsEmpty() {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time is required"})
	}
	if len(r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "notes must not exceed 2000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID          string       `json:"-"`
	Status      string       `json:"status"`
	FinalAmount money.Amount `json:"final_amount"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	status, err := ParseStatus(r.Status)
	if err != nil || status == StatusWaiting {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be completed or canceled"})
	}
	// a cancellation always records zero, so its amount is ignored
	if status == StatusCompleted && r.FinalAmount.IsSet() && r.FinalAmount.Decimal().IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "final_amount", Message: "final_amount must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverviewResponse struct {
	Today        []AppointmentView `json:"today"`
	Waiting      []AppointmentView `json:"waiting"`
	WaitingCount int               `json:"waiting_count"`
}
