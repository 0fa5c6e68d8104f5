package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	UpdateFinancials(ctx context.Context, id string, f Financials) error
	UpdateProfile(ctx context.Context, id, name, phone string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
