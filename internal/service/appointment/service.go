package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/shared"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type AppointmentServiceImpl struct {
	tx              database.Transactor
	appointmentRepo appointment.AppointmentRepository
	serviceRepo     catalog.ServiceRepository
	employeeRepo    employee.EmployeeRepository
	customerRepo    customer.CustomerRepository
	transactionRepo transaction.TransactionRepository
	publisher       events.Publisher
	loc             *time.Location
	clock           func() time.Time
}

func NewAppointmentService(
	tx database.Transactor,
	appointmentRepo appointment.AppointmentRepository,
	serviceRepo catalog.ServiceRepository,
	employeeRepo employee.EmployeeRepository,
	customerRepo customer.CustomerRepository,
	transactionRepo transaction.TransactionRepository,
	publisher events.Publisher,
	loc *time.Location,
	clock func() time.Time,
) appointment.AppointmentService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &AppointmentServiceImpl{
		tx:              tx,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
		loc:             loc,
		clock:           clock,
	}
}

// lookups loads the reference data views are joined against.
func (s *AppointmentServiceImpl) lookups(ctx context.Context) (appointment.Lookups, error) {
	var (
		employees []employee.Employee
		customers []customer.Customer
		services  []catalog.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gctx, employee.EmployeeFilter{IncludeGuests: true})
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.customerRepo.List(gctx, customer.CustomerFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.serviceRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return appointment.Lookups{}, fmt.Errorf("failed to load appointment lookups: %w", err)
	}

	return appointment.Lookups{
		Employees: employee.NameIndex(employees),
		Customers: customer.NameIndex(customers),
		Services:  catalog.Index(services),
	}, nil
}

func (s *AppointmentServiceImpl) view(ctx context.Context, id string) (appointment.AppointmentView, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	l, err := s.lookups(ctx)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	return appointment.BuildView(a, l, s.loc), nil
}

// resolveStart turns the client's start time into a UTC instant or a field error.
func (s *AppointmentServiceImpl) resolveStart(raw timeutil.RawInstant) (time.Time, error) {
	start, err := raw.Resolve(s.loc)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{Field: "start_time", Message: "start_time must be epoch milliseconds or an ISO 8601 date-time"}}
	}
	return start, nil
}

// ListAppointments implements appointment.AppointmentService.
func (s *AppointmentServiceImpl) ListAppointments(ctx context.Context, filter appointment.AppointmentFilter) ([]appointment.AppointmentView, error) {
	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	l, err := s.lookups(ctx)
	if err != nil {
		return nil, err
	}
	return appointment.BuildViews(list, l, s.loc), nil
}

// GetAppointment implements appointment.AppointmentService.
func (s *AppointmentServiceImpl) GetAppointment(ctx context.Context, id string) (appointment.AppointmentView, error) {
	return s.view(ctx, id)
}

// Overview implements appointment.AppointmentService.
func (s *AppointmentServiceImpl) Overview(ctx context.Context) (appointment.OverviewResponse, error) {
	now := s.clock()
	from := timeutil.StartOfDay(now, s.loc)
	to := timeutil.EndOfDay(from)
	waitingStatus := appointment.StatusWaiting

	var (
		todayList   []appointment.Appointment
		waitingList []appointment.Appointment
		l           appointment.Lookups
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		todayList, err = s.appointmentRepo.List(gctx, appointment.AppointmentFilter{From: &from, To: &to})
		return err
	})
	g.Go(func() error {
		var err error
		waitingList, err = s.appointmentRepo.List(gctx, appointment.AppointmentFilter{Status: &waitingStatus})
		return err
	})
	g.Go(func() error {
		var err error
		l, err = s.lookups(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return appointment.OverviewResponse{}, err
	}

	today := appointment.TodayAppointments(todayList, now, s.loc)
	waiting := appointment.WaitingAppointments(waitingList)

	return appointment.OverviewResponse{
		Today:        appointment.BuildViews(today, l, s.loc),
		Waiting:      appointment.BuildViews(waiting, l, s.loc),
		WaitingCount: len(waiting),
	}, nil
}

// CreateAppointment implements appointment.AppointmentService.
func (s *AppointmentServiceImpl) CreateAppointment(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.AppointmentView, error) {
	if err := req.Validate(); err != nil {
		return appointment.AppointmentView{}, err
	}
	start, err := s.resolveStart(req.StartTime)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	all, err := s.serviceRepo.List(ctx)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	selected, err := catalog.Resolve(req.ServiceIDs, all)
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	if !emp.Role.Bookable() {
		return appointment.AppointmentView{}, employee.ErrEmployeeNotBookable
	}

	cust, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	end, err := appointment.EndTimeFor(start, selected)
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	created, err := s.appointmentRepo.Create(ctx, appointment.Appointment{
		EmployeeID: emp.ID,
		CustomerID: cust.ID,
		ServiceIDs: req.ServiceIDs,
		StartTime:  start,
		EndTime:    end,
		Status:     appointment.StatusWaiting,
		Notes:      req.Notes,
		TotalPrice: catalog.TotalPrice(selected),
		CreatedBy:  session.EmployeeID,
	})
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	s.publisher.Publish(ctx, events.TopicAppointments)

	return appointment.BuildView(created, appointment.Lookups{
		Employees: map[string]string{emp.ID: emp.Name},
		Customers: map[string]string{cust.ID: cust.Name},
		Services:  catalog.Index(selected),
	}, s.loc), nil
}

// UpdateAppointment implements appointment.AppointmentService. The end time follows the
// stored services at their current durations; services deleted since contribute nothing.
func (s *AppointmentServiceImpl) UpdateAppointment(ctx context.Context, req appointment.UpdateAppointmentRequest) (appointment.AppointmentView, error) {
	if err := req.Validate(); err != nil {
		return appointment.AppointmentView{}, err
	}
	start, err := s.resolveStart(req.StartTime)
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	current, err := s.appointmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	if current.Status.IsTerminal() {
		return appointment.AppointmentView{}, appointment.ErrAppointmentAlreadyClosed
	}

	all, err := s.serviceRepo.List(ctx)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	end := appointment.ComputeEndTime(start, catalog.ResolveKnown(current.ServiceIDs, all))

	if err := s.appointmentRepo.UpdateSchedule(ctx, req.ID, start, end, req.Notes); err != nil {
		return appointment.AppointmentView{}, err
	}

	s.publisher.Publish(ctx, events.TopicAppointments)
	return s.view(ctx, req.ID)
}

// UpdateStatus implements appointment.AppointmentService. Completing with a positive amount
// books the income in the same database transaction.
func (s *AppointmentServiceImpl) UpdateStatus(ctx context.Context, req appointment.UpdateStatusRequest) (appointment.AppointmentView, error) {
	if err := req.Validate(); err != nil {
		return appointment.AppointmentView{}, err
	}
	next, err := appointment.ParseStatus(req.Status)
	if err != nil {
		return appointment.AppointmentView{}, err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	bookedIncome := false
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.appointmentRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := current.CanTransitionTo(next); err != nil {
			return err
		}

		amount := decimal.Zero
		if next == appointment.StatusCompleted {
			amount, err = s.completionAmount(ctx, current, req)
			if err != nil {
				return err
			}
		}

		if err := s.appointmentRepo.UpdateStatus(ctx, current.ID, next, amount); err != nil {
			return err
		}

		if next != appointment.StatusCompleted || !amount.IsPositive() {
			return nil
		}

		appointmentID := current.ID
		_, err = s.transactionRepo.Create(ctx, transaction.Transaction{
			Type:          transaction.TypeIncome,
			Amount:        amount,
			Description:   s.incomeDescription(ctx, current.CustomerID),
			Date:          s.clock().UTC(),
			CreatedBy:     session.EmployeeID,
			AppointmentID: &appointmentID,
		})
		if err != nil {
			return fmt.Errorf("failed to book appointment income: %w", err)
		}
		bookedIncome = true
		return nil
	})
	if err != nil {
		return appointment.AppointmentView{}, err
	}

	if bookedIncome {
		s.publisher.Publish(ctx, events.TopicAppointments, events.TopicTransactions)
	} else {
		s.publisher.Publish(ctx, events.TopicAppointments)
	}
	return s.view(ctx, req.ID)
}

// completionAmount is the supplied final amount, or else the current price of the
// appointment's services. Never negative.
func (s *AppointmentServiceImpl) completionAmount(ctx context.Context, a appointment.Appointment, req appointment.UpdateStatusRequest) (decimal.Decimal, error) {
	if req.FinalAmount.IsSet() {
		return decimal.Max(req.FinalAmount.Decimal(), decimal.Zero), nil
	}
	all, err := s.serviceRepo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Max(catalog.TotalPrice(catalog.ResolveKnown(a.ServiceIDs, all)), decimal.Zero), nil
}

func (s *AppointmentServiceImpl) incomeDescription(ctx context.Context, customerID string) string {
	name := shared.UnknownName
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err == nil {
		name = c.Name
	} else if !errors.Is(err, customer.ErrCustomerNotFound) {
		return "Appointment"
	}
	return "Appointment: " + name
}
