package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/shared"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
)

type PayrollServiceImpl struct {
	tx           database.Transactor
	salaryRepo   payroll.SalaryRecordRepository
	advanceRepo  payroll.AdvanceRequestRepository
	employeeRepo employee.EmployeeRepository
	publisher    events.Publisher
	clock        func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	salaryRepo payroll.SalaryRecordRepository,
	advanceRepo payroll.AdvanceRequestRepository,
	employeeRepo employee.EmployeeRepository,
	publisher events.Publisher,
	clock func() time.Time,
) payroll.PayrollService {
	if clock == nil {
		clock = time.Now
	}
	return &PayrollServiceImpl{
		tx:           tx,
		salaryRepo:   salaryRepo,
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		clock:        clock,
	}
}

func (s *PayrollServiceImpl) employeeNames(ctx context.Context) (map[string]string, error) {
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{IncludeGuests: true})
	if err != nil {
		return nil, err
	}
	return employee.NameIndex(employees), nil
}

func nameOrUnknown(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return shared.UnknownName
}

// ========== SALARY RECORDS ==========

func (s *PayrollServiceImpl) ListSalaryRecords(ctx context.Context, filter payroll.SalaryRecordFilter) (payroll.ListSalaryRecordResponse, error) {
	filter.Normalize()

	records, total, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListSalaryRecordResponse{}, err
	}
	names, err := s.employeeNames(ctx)
	if err != nil {
		return payroll.ListSalaryRecordResponse{}, err
	}

	data := make([]payroll.SalaryRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, payroll.ToSalaryRecordResponse(r, nameOrUnknown(names, r.EmployeeID)))
	}

	return payroll.ListSalaryRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) CreateSalaryRecord(ctx context.Context, req payroll.CreateSalaryRecordRequest) (payroll.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	salaryType, err := payroll.ParseSalaryType(req.Type)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	created, err := s.salaryRepo.Create(ctx, payroll.SalaryRecord{
		EmployeeID:  emp.ID,
		Type:        salaryType,
		Amount:      req.Amount.Decimal(),
		Description: strings.TrimSpace(req.Description),
		Approved:    false,
		Date:        s.clock().UTC(),
	})
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicSalaryRecords)
	return payroll.ToSalaryRecordResponse(created, emp.Name), nil
}

func (s *PayrollServiceImpl) ApproveSalaryRecord(ctx context.Context, id string) (payroll.SalaryRecordResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	if err := s.salaryRepo.Approve(ctx, id, session.EmployeeID); err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicSalaryRecords)

	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	names, err := s.employeeNames(ctx)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	return payroll.ToSalaryRecordResponse(record, nameOrUnknown(names, record.EmployeeID)), nil
}

// ========== ADVANCE REQUESTS ==========

func (s *PayrollServiceImpl) ListAdvanceRequests(ctx context.Context, filter payroll.AdvanceRequestFilter) (payroll.ListAdvanceRequestResponse, error) {
	filter.Normalize()

	requests, total, err := s.advanceRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListAdvanceRequestResponse{}, err
	}

	data := make([]payroll.AdvanceRequestResponse, 0, len(requests))
	for _, r := range requests {
		data = append(data, payroll.ToAdvanceRequestResponse(r, shared.UnknownName))
	}

	return payroll.ListAdvanceRequestResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) PendingAdvanceCount(ctx context.Context) (payroll.PendingCountResponse, error) {
	count, err := s.advanceRepo.CountByStatus(ctx, payroll.AdvanceStatusPending)
	if err != nil {
		return payroll.PendingCountResponse{}, err
	}
	return payroll.PendingCountResponse{Pending: count}, nil
}

func (s *PayrollServiceImpl) CreateMyAdvanceRequest(ctx context.Context, req payroll.CreateAdvanceRequestRequest) (payroll.AdvanceRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdvanceRequestResponse{}, err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.AdvanceRequestResponse{}, err
	}

	inserted, err := s.advanceRepo.Create(ctx, payroll.AdvanceRequest{
		EmployeeID: session.EmployeeID,
		Amount:     req.Amount.Decimal(),
		Reason:     strings.TrimSpace(req.Reason),
		Status:     payroll.AdvanceStatusPending,
	})
	if err != nil {
		return payroll.AdvanceRequestResponse{}, err
	}

	// re-read to pick up the joined employee name
	created, err := s.advanceRepo.GetByID(ctx, inserted.ID)
	if err != nil {
		return payroll.AdvanceRequestResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicAdvanceRequests)
	return payroll.ToAdvanceRequestResponse(created, shared.UnknownName), nil
}

// ApproveAdvanceRequest approves a pending request and writes the matching approved
// advance salary record in the same database transaction.
func (s *PayrollServiceImpl) ApproveAdvanceRequest(ctx context.Context, id string) (payroll.AdvanceRequestResponse, error) {
	return s.decide(ctx, id, payroll.AdvanceStatusApproved)
}

func (s *PayrollServiceImpl) RejectAdvanceRequest(ctx context.Context, id string) (payroll.AdvanceRequestResponse, error) {
	return s.decide(ctx, id, payroll.AdvanceStatusRejected)
}

func (s *PayrollServiceImpl) decide(ctx context.Context, id string, next payroll.AdvanceStatus) (payroll.AdvanceRequestResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return payroll.AdvanceRequestResponse{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := s.advanceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := req.Decide(next); err != nil {
			return err
		}
		if err := s.advanceRepo.UpdateStatus(ctx, id, next, session.EmployeeID); err != nil {
			return err
		}
		if next != payroll.AdvanceStatusApproved {
			return nil
		}
		_, err = s.salaryRepo.Create(ctx, payroll.AdvanceRecordFor(req, session.EmployeeID, s.clock().UTC()))
		return err
	})
	if err != nil {
		return payroll.AdvanceRequestResponse{}, err
	}

	if next == payroll.AdvanceStatusApproved {
		s.publisher.Publish(ctx, events.TopicAdvanceRequests, events.TopicSalaryRecords)
	} else {
		s.publisher.Publish(ctx, events.TopicAdvanceRequests)
	}

	updated, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.AdvanceRequestResponse{}, err
	}
	return payroll.ToAdvanceRequestResponse(updated, shared.UnknownName), nil
}
