package appointment

import "context"

type AppointmentService interface {
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]AppointmentView, error)
	GetAppointment(ctx context.Context, id string) (AppointmentView, error)
	// Overview returns today's and the waiting appointments, derived fresh on every call.
	Overview(ctx context.Context) (OverviewResponse, error)

	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (AppointmentView, error)
	UpdateAppointment(ctx context.Context, req UpdateAppointmentRequest) (AppointmentView, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (AppointmentView, error)
}
