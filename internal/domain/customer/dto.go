package customer

import (
	"strings"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
)

type CustomerFilter struct {
	Search string
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (r *CreateCustomerRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Phone = validator.NormalizePhone(r.Phone)

	if r.Name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if r.Phone == "" {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone is required"})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must be a valid phone number"})
	}
	if len(r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "notes must not exceed 2000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
