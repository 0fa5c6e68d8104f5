package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentRepository never deletes rows; cancellation is a status.
type AppointmentRepository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)
	// UpdateSchedule and UpdateStatus only touch waiting appointments and
	// return ErrAppointmentAlreadyClosed otherwise.
	UpdateSchedule(ctx context.Context, id string, start, end time.Time, notes string) error
	UpdateStatus(ctx context.Context, id string, status Status, totalPrice decimal.Decimal) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
