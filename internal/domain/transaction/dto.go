package transaction

import (
	"time"

	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TransactionFilter struct {
	From            *time.Time
	To              *time.Time
	IncludeCanceled bool
}

type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          Type            `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	DateMillis    int64           `json:"date_millis"`
	Canceled      bool            `json:"canceled"`
	CreatedBy     string          `json:"created_by"`
	CreatedByName string          `json:"created_by_name"`
	AppointmentID *string         `json:"appointment_id,omitempty"`
}

// ToResponse joins the creator name; an unknown creator is shown as placeholder.
func ToResponse(t Transaction, names map[string]string, placeholder string) TransactionResponse {
	name, ok := names[t.CreatedBy]
	if !ok || name == "" {
		name = placeholder
	}
	return TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		Date:          t.Date,
		DateMillis:    timeutil.ToEpochMillis(t.Date),
		Canceled:      t.Canceled,
		CreatedBy:     t.CreatedBy,
		CreatedByName: name,
		AppointmentID: t.AppointmentID,
	}
}

type CreateTransactionRequest struct {
	Type        string       `json:"type"`
	Amount      money.Amount `json:"amount"`
	Description string       `json:"description"`
}

func (r *CreateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be income or expense"})
	}
	if !r.Amount.Decimal().IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than 0"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	} else if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
