package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	publisher    events.Publisher
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, publisher events.Publisher) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		publisher:    publisher,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.ToResponse(e))
	}
	return resp, nil
}

// verifyOwnerPassword re-checks the acting owner's password before a sensitive change.
func (s *EmployeeServiceImpl) verifyOwnerPassword(ctx context.Context, session auth.Session, password string) error {
	owner, err := s.employeeRepo.GetByID(ctx, session.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to load acting owner: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return employee.ErrOwnerPasswordMismatch
	}
	return nil
}

// UpdateRole implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateRole(ctx context.Context, req employee.UpdateRoleRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.ID == session.EmployeeID {
		return employee.EmployeeResponse{}, employee.ErrCannotChangeOwnRole
	}
	if err := s.verifyOwnerPassword(ctx, session, req.OwnerPassword); err != nil {
		return employee.EmployeeResponse{}, err
	}

	role, err := employee.ParseRole(req.Role)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.employeeRepo.UpdateRole(ctx, req.ID, role); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicEmployees)
	return employee.ToResponse(updated), nil
}

// UpdateFinancials implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateFinancials(ctx context.Context, req employee.UpdateFinancialsRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.verifyOwnerPassword(ctx, session, req.OwnerPassword); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateFinancials(ctx, req.ID, req.Financials()); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicEmployees)
	return employee.ToResponse(updated), nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context) (employee.ProfileResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, session.EmployeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.ToProfile(emp), nil
}

// UpdateProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	phone := validator.NormalizePhone(req.Phone)
	if err := s.employeeRepo.UpdateProfile(ctx, session.EmployeeID, name, phone); err != nil {
		return employee.ProfileResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, session.EmployeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicEmployees)
	return employee.ToProfile(updated), nil
}

// ChangePassword implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ChangePassword(ctx context.Context, req employee.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, session.EmployeeID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return employee.ErrCurrentPasswordWrong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.employeeRepo.UpdatePassword(ctx, session.EmployeeID, string(hash))
}
