package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
)

type advanceRequestRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRequestRepository(db *database.DB) payroll.AdvanceRequestRepository {
	return &advanceRequestRepositoryImpl{db: db}
}

// the employee name is empty when the employee row no longer exists
const advanceRequestSelect = `
	SELECT ar.id, ar.employee_id, COALESCE(e.name, ''), ar.amount, ar.reason, ar.status,
		   ar.processed_by, ar.processed_at, ar.created_at
	FROM advance_requests ar
	LEFT JOIN employees e ON e.id = ar.employee_id
`

func scanAdvanceRequest(row pgx.Row) (payroll.AdvanceRequest, error) {
	var a payroll.AdvanceRequest
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.EmployeeName,
		&a.Amount,
		&a.Reason,
		&a.Status,
		&a.ProcessedBy,
		&a.ProcessedAt,
		&a.CreatedAt,
	)
	return a, err
}

// Create implements payroll.AdvanceRequestRepository.
func (r *advanceRequestRepositoryImpl) Create(ctx context.Context, req payroll.AdvanceRequest) (payroll.AdvanceRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return payroll.AdvanceRequest{}, err
	}
	req.ID = id
	if req.Status == "" {
		req.Status = payroll.AdvanceStatusPending
	}

	query := `
		INSERT INTO advance_requests (id, employee_id, amount, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query, req.ID, req.EmployeeID, req.Amount, req.Reason, req.Status).Scan(&req.CreatedAt)
	if err != nil {
		return payroll.AdvanceRequest{}, fmt.Errorf("failed to create advance request: %w", err)
	}
	return req, nil
}

// GetByID implements payroll.AdvanceRequestRepository.
func (r *advanceRequestRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.AdvanceRequest, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdvanceRequest(q.QueryRow(ctx, advanceRequestSelect+` WHERE ar.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.AdvanceRequest{}, payroll.ErrAdvanceRequestNotFound
		}
		return payroll.AdvanceRequest{}, fmt.Errorf("failed to get advance request by id: %w", err)
	}
	return a, nil
}

// List implements payroll.AdvanceRequestRepository.
func (r *advanceRequestRepositoryImpl) List(ctx context.Context, filter payroll.AdvanceRequestFilter) ([]payroll.AdvanceRequest, int64, error) {
	q := GetQuerier(ctx, r.db)
	filter.Normalize()

	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND ar.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND ar.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM advance_requests ar `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count advance requests: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY ar.created_at DESC LIMIT $%d OFFSET $%d`,
		advanceRequestSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list advance requests: %w", err)
	}
	defer rows.Close()

	requests := make([]payroll.AdvanceRequest, 0)
	for rows.Next() {
		a, err := scanAdvanceRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan advance request: %w", err)
		}
		requests = append(requests, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus implements payroll.AdvanceRequestRepository.
func (r *advanceRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status payroll.AdvanceStatus, processedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advance_requests
		SET status = $1, processed_by = $2, processed_at = NOW()
		WHERE id = $3 AND status = $4
	`
	tag, err := q.Exec(ctx, query, status, processedBy, id, payroll.AdvanceStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update advance request status: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM advance_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check advance request: %w", err)
	}
	if !exists {
		return payroll.ErrAdvanceRequestNotFound
	}
	return payroll.ErrAdvanceRequestAlreadyProcessed
}

// CountByStatus implements payroll.AdvanceRequestRepository.
func (r *advanceRequestRepositoryImpl) CountByStatus(ctx context.Context, status payroll.AdvanceStatus) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM advance_requests WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count advance requests: %w", err)
	}
	return count, nil
}
