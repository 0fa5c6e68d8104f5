package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/shared"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	"github.com/salonpanel/salon-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var istanbul = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		panic(err)
	}
	return loc
}()

// 2025-03-10 12:00 in Istanbul
var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc          appointment.AppointmentService
	tx           *servicetest.Tx
	appointments *servicetest.AppointmentRepo
	services     *servicetest.ServiceRepo
	customers    *servicetest.CustomerRepo
	transactions *servicetest.TransactionRepo
	publisher    *servicetest.Publisher
	ctx          context.Context
}

func newFixture(seed ...appointment.Appointment) *fixture {
	f := &fixture{
		tx:           &servicetest.Tx{},
		appointments: servicetest.NewAppointmentRepo(seed...),
		services: servicetest.NewServiceRepo(
			catalog.Service{ID: "cut", Title: "Kesim", DurationMinutes: 30, Price: decimal.NewFromInt(250)},
			catalog.Service{ID: "color", Title: "Boya", DurationMinutes: 90, Price: decimal.NewFromInt(900)},
		),
		customers: servicetest.NewCustomerRepo(
			customer.Customer{ID: "c1", Name: "Elif", Phone: "05321112233"},
		),
		transactions: servicetest.NewTransactionRepo(),
		publisher:     &servicetest.Publisher{},
		ctx:           auth.WithSession(context.Background(), auth.Session{EmployeeID: "owner", Role: employee.RolePatron}),
	}
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: "owner", Name: "Owner", Role: employee.RolePatron},
		employee.Employee{ID: "staff", Name: "Zeynep", Role: employee.RoleCalisan},
		employee.Employee{ID: "guest", Name: "Guest", Role: employee.RoleMisafir},
	)
	f.svc = NewAppointmentService(f.tx, f.appointments, f.services, employees, f.customers, f.transactions, f.publisher, istanbul,
		func() time.Time { return fixedNow })
	return f
}

func waitingAppointment(id string, start time.Time, serviceIDs ...string) appointment.Appointment {
	return appointment.Appointment{
		ID: id, EmployeeID: "staff", CustomerID: "c1", ServiceIDs: serviceIDs,
		StartTime: start, EndTime: start.Add(time.Hour), Status: appointment.StatusWaiting,
	}
}

func TestCreateAppointment_ComputesEndAndTotal(t *testing.T) {
	f := newFixture()

	// wall-clock 14:00 in Istanbul is 11:00 UTC
	view, err := f.svc.CreateAppointment(f.ctx, appointment.CreateAppointmentRequest{
		CustomerID: "c1",
		EmployeeID: "staff",
		ServiceIDs: []string{"color", "cut"},
		StartTime:  timeutil.NewRawInstant("2025-03-10T14:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC), view.StartTime)
	assert.Equal(t, time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), view.EndTime)
	assert.Equal(t, "14:00", view.StartLabel)
	assert.Equal(t, "16:00", view.EndLabel)
	assert.Equal(t, "2h 0m", view.DurationLabel)
	assert.True(t, decimal.NewFromInt(1150).Equal(view.TotalPrice))
	assert.Equal(t, appointment.StatusWaiting, view.Status)
	assert.Equal(t, "Zeynep", view.EmployeeName)
	assert.Equal(t, "Elif", view.CustomerName)
	assert.Equal(t, []string{"color", "cut"}, view.ServiceIDs)
	assert.Equal(t, []events.Topic{events.TopicAppointments}, f.publisher.Topics)

	stored := f.appointments.Rows[view.ID]
	assert.Equal(t, "owner", stored.CreatedBy)
}

func TestCreateAppointment_EpochMillisStart(t *testing.T) {
	f := newFixture()
	start := time.Date(2025, 3, 11, 7, 0, 0, 0, time.UTC)

	view, err := f.svc.CreateAppointment(f.ctx, appointment.CreateAppointmentRequest{
		CustomerID: "c1", EmployeeID: "owner", ServiceIDs: []string{"cut"},
		StartTime: timeutil.NewRawInstant(start.UnixMilli()),
	})
	require.NoError(t, err)
	assert.Equal(t, start, view.StartTime)
	assert.Equal(t, start.Add(30*time.Minute), view.EndTime)
}

func TestCreateAppointment_RejectsMissingFieldsWithoutStorage(t *testing.T) {
	cases := map[string]appointment.CreateAppointmentRequest{
		"customer_id": {EmployeeID: "staff", ServiceIDs: []string{"cut"}, StartTime: timeutil.NewRawInstant("2025-03-10T14:00")},
		"employee_id": {CustomerID: "c1", ServiceIDs: []string{"cut"}, StartTime: timeutil.NewRawInstant("2025-03-10T14:00")},
		"start_time":  {CustomerID: "c1", EmployeeID: "staff", ServiceIDs: []string{"cut"}},
		"service_ids": {CustomerID: "c1", EmployeeID: "staff", StartTime: timeutil.NewRawInstant("2025-03-10T14:00")},
	}

	for field, req := range cases {
		t.Run(field, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.CreateAppointment(f.ctx, req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.Has(field))
			assert.Empty(t, f.appointments.Rows)
			assert.Empty(t, f.publisher.Topics)
		})
	}
}

func TestCreateAppointment_UnparseableStart(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateAppointment(f.ctx, appointment.CreateAppointmentRequest{
		CustomerID: "c1", EmployeeID: "staff", ServiceIDs: []string{"cut"}, StartTime: timeutil.NewRawInstant("next tuesday"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("start_time"))
}

func TestCreateAppointment_ReferenceChecks(t *testing.T) {
	base := appointment.CreateAppointmentRequest{
		CustomerID: "c1", EmployeeID: "staff", ServiceIDs: []string{"cut"}, StartTime: timeutil.NewRawInstant("2025-03-10T14:00"),
	}

	unknownService := base
	unknownService.ServiceIDs = []string{"cut", "gone"}
	guest := base
	guest.EmployeeID = "guest"
	ghostEmployee := base
	ghostEmployee.EmployeeID = "ghost"
	ghostCustomer := base
	ghostCustomer.CustomerID = "ghost"

	tests := []struct {
		name string
		req  appointment.CreateAppointmentRequest
		want error
	}{
		{"unknown service", unknownService, catalog.ErrServiceNotFound},
		{"guest employee", guest, employee.ErrEmployeeNotBookable},
		{"missing employee", ghostEmployee, employee.ErrEmployeeNotFound},
		{"missing customer", ghostCustomer, customer.ErrCustomerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.CreateAppointment(f.ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.appointments.Rows)
		})
	}
}

func TestUpdateAppointment_RecomputesEndIgnoringOrphans(t *testing.T) {
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	f := newFixture(waitingAppointment("a1", start, "cut", "deleted-service"))

	view, err := f.svc.UpdateAppointment(f.ctx, appointment.UpdateAppointmentRequest{
		ID: "a1", StartTime: timeutil.NewRawInstant("2025-03-10T15:00"), Notes: "moved",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), view.StartTime)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC), view.EndTime)
	assert.Equal(t, "moved", view.Notes)
	require.Len(t, view.Services, 2)
	assert.True(t, view.Services[1].Missing)
	assert.Equal(t, shared.UnknownName, view.Services[1].Title)
}

func TestUpdateAppointment_TerminalRejected(t *testing.T) {
	a := waitingAppointment("a1", fixedNow, "cut")
	a.Status = appointment.StatusCompleted
	f := newFixture(a)

	_, err := f.svc.UpdateAppointment(f.ctx, appointment.UpdateAppointmentRequest{ID: "a1", StartTime: timeutil.NewRawInstant("2025-03-10T15:00")})
	assert.ErrorIs(t, err, appointment.ErrAppointmentAlreadyClosed)
}

func TestUpdateStatus_CancelForcesZero(t *testing.T) {
	f := newFixture(waitingAppointment("a1", fixedNow, "cut"))

	view, err := f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "iptal", FinalAmount: money.NewAmount(500)})
	require.NoError(t, err)

	assert.Equal(t, appointment.StatusCanceled, view.Status)
	assert.True(t, view.TotalPrice.IsZero())
	assert.Empty(t, f.transactions.Rows)
	assert.Equal(t, []events.Topic{events.TopicAppointments}, f.publisher.Topics)
}

func TestUpdateStatus_CancelIgnoresNegativeAmount(t *testing.T) {
	f := newFixture(waitingAppointment("a1", fixedNow, "cut"))

	view, err := f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "canceled", FinalAmount: money.NewAmount(-50)})
	require.NoError(t, err)

	assert.Equal(t, appointment.StatusCanceled, view.Status)
	assert.True(t, view.TotalPrice.IsZero())
	assert.Empty(t, f.transactions.Rows)

	stored, err := f.appointments.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCanceled, stored.Status)
}

func TestUpdateStatus_CompleteBooksIncome(t *testing.T) {
	f := newFixture(waitingAppointment("a1", fixedNow, "cut", "color"))

	view, err := f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "tamamlandı"})
	require.NoError(t, err)

	assert.Equal(t, appointment.StatusCompleted, view.Status)
	assert.True(t, decimal.NewFromInt(1150).Equal(view.TotalPrice))
	assert.Equal(t, 1, f.tx.Calls)

	require.Len(t, f.transactions.Rows, 1)
	income := f.transactions.Rows[0]
	assert.Equal(t, transaction.TypeIncome, income.Type)
	assert.True(t, decimal.NewFromInt(1150).Equal(income.Amount))
	assert.Equal(t, "owner", income.CreatedBy)
	require.NotNil(t, income.AppointmentID)
	assert.Equal(t, "a1", *income.AppointmentID)
	assert.Equal(t, "Appointment: Elif", income.Description)
	assert.Equal(t, []events.Topic{events.TopicAppointments, events.TopicTransactions}, f.publisher.Topics)
}

func TestUpdateStatus_CompleteWithFinalAmount(t *testing.T) {
	f := newFixture(waitingAppointment("a1", fixedNow, "cut"))

	view, err := f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "completed", FinalAmount: money.NewAmount("199.90")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("199.90").Equal(view.TotalPrice))
}

func TestUpdateStatus_CompleteWithZeroAmountBooksNothing(t *testing.T) {
	f := newFixture(waitingAppointment("a1", fixedNow, "cut"))

	_, err := f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "completed", FinalAmount: money.NewAmount(0)})
	require.NoError(t, err)
	assert.Empty(t, f.transactions.Rows)
}

func TestUpdateStatus_TerminalIsFinal(t *testing.T) {
	f := newFixture(waitingAppointment("a1", fixedNow, "cut"))

	_, err := f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "completed"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "canceled"})
	assert.ErrorIs(t, err, appointment.ErrAppointmentAlreadyClosed)
	assert.Len(t, f.transactions.Rows, 1)
}

func TestUpdateStatus_WaitingIsNotATarget(t *testing.T) {
	f := newFixture(waitingAppointment("a1", fixedNow, "cut"))

	_, err := f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "a1", Status: "bekliyor"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("status"))
}

func TestOverview_WaitingCountTracksMutations(t *testing.T) {
	yesterday := fixedNow.Add(-24 * time.Hour)
	f := newFixture(
		waitingAppointment("old", yesterday, "cut"),
		waitingAppointment("today", fixedNow.Add(time.Hour), "cut"),
	)

	overview, err := f.svc.Overview(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.WaitingCount)
	require.Len(t, overview.Today, 1)
	assert.Equal(t, "today", overview.Today[0].ID)

	_, err = f.svc.CreateAppointment(f.ctx, appointment.CreateAppointmentRequest{
		CustomerID: "c1", EmployeeID: "staff", ServiceIDs: []string{"cut"}, StartTime: timeutil.NewRawInstant("2025-03-10T18:00"),
	})
	require.NoError(t, err)

	overview, err = f.svc.Overview(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.WaitingCount)
	assert.Len(t, overview.Today, 2)

	_, err = f.svc.UpdateStatus(f.ctx, appointment.UpdateStatusRequest{ID: "old", Status: "canceled"})
	require.NoError(t, err)

	overview, err = f.svc.Overview(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.WaitingCount)

	count, err := f.appointments.CountByStatus(f.ctx, appointment.StatusWaiting)
	require.NoError(t, err)
	assert.Equal(t, int64(overview.WaitingCount), count)
}

func TestListAppointments_OrphanReferences(t *testing.T) {
	a := waitingAppointment("a1", fixedNow, "cut")
	a.CustomerID = "deleted-customer"
	a.EmployeeID = "deleted-employee"
	f := newFixture(a)

	views, err := f.svc.ListAppointments(f.ctx, appointment.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, shared.UnknownName, views[0].CustomerName)
	assert.Equal(t, shared.UnknownName, views[0].EmployeeName)
}
