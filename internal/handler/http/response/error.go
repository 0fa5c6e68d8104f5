package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrSessionExpired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrNoSession),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		SessionExpired(w)
	case errors.Is(err, auth.ErrDashboardAccessDenied):
		Forbidden(w, "Only the owner may access the dashboard")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, "Too many login attempts, try again shortly")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrOwnerPasswordMismatch):
		Forbidden(w, "Owner password is incorrect")
	case errors.Is(err, employee.ErrCannotChangeOwnRole):
		Forbidden(w, "You cannot change your own role")
	case errors.Is(err, employee.ErrCurrentPasswordWrong):
		BadRequest(w, "Current password is incorrect", map[string]string{"current_password": "current password is incorrect"})
	case errors.Is(err, employee.ErrEmployeeNotBookable):
		BadRequest(w, "Employee cannot take appointments", map[string]string{"employee_id": "employee cannot take appointments"})
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Catalog and customer errors
	case errors.Is(err, catalog.ErrServiceNotFound):
		NotFound(w, "Service not found")
	case errors.Is(err, customer.ErrCustomerNotFound):
		NotFound(w, "Customer not found")

	// Appointment domain errors
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		NotFound(w, "Appointment not found")
	case errors.Is(err, appointment.ErrAppointmentAlreadyClosed):
		Conflict(w, "Appointment is already completed or canceled")
	case errors.Is(err, appointment.ErrInvalidStatusTransition):
		Conflict(w, "Appointment can only be completed or canceled")
	case errors.Is(err, appointment.ErrInvalidStatus),
		errors.Is(err, appointment.ErrNoServicesSelected),
		errors.Is(err, appointment.ErrStartTimeRequired):
		BadRequest(w, err.Error(), nil)

	// Transaction domain errors
	case errors.Is(err, transaction.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")
	case errors.Is(err, transaction.ErrTransactionAlreadyCanceled):
		Conflict(w, "Transaction already canceled")
	case errors.Is(err, transaction.ErrInvalidType):
		BadRequest(w, "Invalid transaction type", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrSalaryRecordAlreadyApproved):
		Conflict(w, "Salary record already approved")
	case errors.Is(err, payroll.ErrAdvanceRequestNotFound):
		NotFound(w, "Advance request not found")
	case errors.Is(err, payroll.ErrAdvanceRequestAlreadyProcessed):
		Conflict(w, "Advance request already processed")
	case errors.Is(err, payroll.ErrInvalidSalaryType), errors.Is(err, payroll.ErrInvalidAdvanceStatus):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
