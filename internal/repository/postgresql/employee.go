package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, email, phone, password_hash, role, salary, commission_rate, advance_balance, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.PasswordHash,
		&e.Role,
		&e.Salary,
		&e.CommissionRate,
		&e.AdvanceBalance,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (id, name, email, phone, password_hash, role, salary, commission_rate, advance_balance)
		VALUES ($1, $2, LOWER($3), $4, $5, $6, $7, $8, $9)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id, emp.Name, emp.Email, emp.Phone, emp.PasswordHash, emp.Role,
		emp.Salary, emp.CommissionRate, emp.AdvanceBalance,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return e, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`

	e, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Role != nil {
		query += fmt.Sprintf(" AND role = $%d", argIndex)
		args = append(args, *filter.Role)
		argIndex++
	} else if !filter.IncludeGuests {
		query += fmt.Sprintf(" AND role <> $%d", argIndex)
		args = append(args, employee.RoleMisafir)
		argIndex++
	}
	query += " ORDER BY name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// CountByRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByRole(ctx context.Context, role employee.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees by role: %w", err)
	}
	return count, nil
}

func (r *employeeRepositoryImpl) execUpdate(ctx context.Context, query string, args ...any) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateRole implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateRole(ctx context.Context, id string, role employee.Role) error {
	query := `UPDATE employees SET role = $1, updated_at = NOW() WHERE id = $2`
	if err := r.execUpdate(ctx, query, role, id); err != nil {
		return fmt.Errorf("failed to update employee role: %w", err)
	}
	return nil
}

// UpdateFinancials implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateFinancials(ctx context.Context, id string, f employee.Financials) error {
	query := `
		UPDATE employees
		SET salary = $1, commission_rate = $2, advance_balance = $3, updated_at = NOW()
		WHERE id = $4
	`
	if err := r.execUpdate(ctx, query, f.Salary, f.CommissionRate, f.AdvanceBalance, id); err != nil {
		return fmt.Errorf("failed to update employee financials: %w", err)
	}
	return nil
}

// UpdateProfile implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateProfile(ctx context.Context, id, name, phone string) error {
	query := `UPDATE employees SET name = $1, phone = $2, updated_at = NOW() WHERE id = $3`
	if err := r.execUpdate(ctx, query, name, phone, id); err != nil {
		return fmt.Errorf("failed to update employee profile: %w", err)
	}
	return nil
}

// UpdatePassword implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE employees SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	if err := r.execUpdate(ctx, query, passwordHash, id); err != nil {
		return fmt.Errorf("failed to update employee password: %w", err)
	}
	return nil
}
