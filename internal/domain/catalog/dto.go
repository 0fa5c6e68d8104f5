package catalog

import (
	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ServiceResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
}

func ToResponse(s Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Title:           s.Title,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

type CreateServiceRequest struct {
	Title           string       `json:"title"`
	DurationMinutes int          `json:"duration_minutes"`
	Price           money.Amount `json:"price"`
}

func (r *CreateServiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not exceed 255 characters"})
	}
	if r.DurationMinutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "duration_minutes", Message: "duration_minutes must be greater than 0"})
	} else if r.DurationMinutes > 24*60 {
		errs = append(errs, validator.ValidationError{Field: "duration_minutes", Message: "duration_minutes must not exceed one day"})
	}
	if !r.Price.IsSet() {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "price is required"})
	} else if r.Price.Decimal().IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "price must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePriceRequest struct {
	ID    string       `json:"-"`
	Price money.Amount `json:"price"`
}

func (r *UpdatePriceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if !r.Price.IsSet() {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "price is required"})
	} else if r.Price.Decimal().IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "price must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
