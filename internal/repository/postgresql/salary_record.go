package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
)

type salaryRecordRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRecordRepository(db *database.DB) payroll.SalaryRecordRepository {
	return &salaryRecordRepositoryImpl{db: db}
}

const salaryRecordColumns = `id, employee_id, type, amount, description, approved, date, approved_by, approved_at, created_at`

func scanSalaryRecord(row pgx.Row) (payroll.SalaryRecord, error) {
	var s payroll.SalaryRecord
	err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.Type,
		&s.Amount,
		&s.Description,
		&s.Approved,
		&s.Date,
		&s.ApprovedBy,
		&s.ApprovedAt,
		&s.CreatedAt,
	)
	return s, err
}

// Create implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) Create(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return payroll.SalaryRecord{}, err
	}
	record.ID = id

	query := `
		INSERT INTO salary_records (id, employee_id, type, amount, description, approved, date, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Type, record.Amount, record.Description,
		record.Approved, record.Date.UTC(), record.ApprovedBy, record.ApprovedAt,
	).Scan(&record.CreatedAt)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to create salary record: %w", err)
	}
	return record, nil
}

// GetByID implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryRecordColumns + ` FROM salary_records WHERE id = $1`

	s, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record by id: %w", err)
	}
	return s, nil
}

// List implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) List(ctx context.Context, filter payroll.SalaryRecordFilter) ([]payroll.SalaryRecord, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Type != nil {
		whereClause += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, *filter.Type)
		argIndex++
	}
	if filter.Approved != nil {
		whereClause += fmt.Sprintf(" AND approved = $%d", argIndex)
		args = append(args, *filter.Approved)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM salary_records `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM salary_records %s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		salaryRecordColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	records, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListApproved implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) ListApproved(ctx context.Context) ([]payroll.SalaryRecord, error) {
	query := `SELECT ` + salaryRecordColumns + ` FROM salary_records WHERE approved = TRUE ORDER BY date DESC`
	return r.query(ctx, query)
}

func (r *salaryRecordRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.SalaryRecord, 0)
	for rows.Next() {
		s, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, s)
	}
	return records, rows.Err()
}

// Approve implements payroll.SalaryRecordRepository.
func (r *salaryRecordRepositoryImpl) Approve(ctx context.Context, id, approvedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET approved = TRUE, approved_by = $1, approved_at = NOW()
		WHERE id = $2 AND approved = FALSE
	`
	tag, err := q.Exec(ctx, query, approvedBy, id)
	if err != nil {
		return fmt.Errorf("failed to approve salary record: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM salary_records WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check salary record: %w", err)
	}
	if !exists {
		return payroll.ErrSalaryRecordNotFound
	}
	return payroll.ErrSalaryRecordAlreadyApproved
}
