package employee

import "context"

// EmployeeService covers the owner's staff management and every employee's own profile.
type EmployeeService interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (EmployeeResponse, error)
	UpdateFinancials(ctx context.Context, req UpdateFinancialsRequest) (EmployeeResponse, error)

	GetProfile(ctx context.Context) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
