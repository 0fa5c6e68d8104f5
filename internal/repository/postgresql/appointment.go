package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type appointmentRepositoryImpl struct {
	db *database.DB
	tx database.Transactor
}

func NewAppointmentRepository(db *database.DB) appointment.AppointmentRepository {
	return &appointmentRepositoryImpl{db: db, tx: NewTransactor(db)}
}

const appointmentSelect = `
	SELECT a.id, a.employee_id, a.customer_id, a.start_time, a.end_time, a.status, a.notes,
		   a.total_price, a.created_by, a.created_at, a.updated_at,
		   COALESCE(array_agg(s.service_id ORDER BY s.position) FILTER (WHERE s.service_id IS NOT NULL), '{}') AS service_ids
	FROM appointments a
	LEFT JOIN appointment_services s ON s.appointment_id = a.id
`

func scanAppointment(row pgx.Row) (appointment.Appointment, error) {
	var a appointment.Appointment
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.CustomerID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.Notes,
		&a.TotalPrice,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.ServiceIDs,
	)
	return a, err
}

// Create implements appointment.AppointmentRepository. The appointment row and
// its ordered service ids are written in one transaction.
func (r *appointmentRepositoryImpl) Create(ctx context.Context, a appointment.Appointment) (appointment.Appointment, error) {
	id, err := newID()
	if err != nil {
		return appointment.Appointment{}, err
	}
	a.ID = id

	err = r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO appointments (id, employee_id, customer_id, start_time, end_time, status, notes, total_price, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at
		`
		err := q.QueryRow(ctx, query,
			a.ID, a.EmployeeID, a.CustomerID, a.StartTime.UTC(), a.EndTime.UTC(),
			a.Status, a.Notes, a.TotalPrice, a.CreatedBy,
		).Scan(&a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert appointment: %w", err)
		}

		for i, serviceID := range a.ServiceIDs {
			_, err := q.Exec(ctx,
				`INSERT INTO appointment_services (appointment_id, position, service_id) VALUES ($1, $2, $3)`,
				a.ID, i, serviceID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert appointment service: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return appointment.Appointment{}, err
	}
	return a, nil
}

// GetByID implements appointment.AppointmentRepository.
func (r *appointmentRepositoryImpl) GetByID(ctx context.Context, id string) (appointment.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	query := appointmentSelect + ` WHERE a.id = $1 GROUP BY a.id`

	a, err := scanAppointment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appointment.Appointment{}, appointment.ErrAppointmentNotFound
		}
		return appointment.Appointment{}, fmt.Errorf("failed to get appointment by id: %w", err)
	}
	return a, nil
}

// List implements appointment.AppointmentRepository.
func (r *appointmentRepositoryImpl) List(ctx context.Context, filter appointment.AppointmentFilter) ([]appointment.Appointment, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.From != nil {
		whereClause += fmt.Sprintf(" AND a.start_time >= $%d", argIndex)
		args = append(args, filter.From.UTC())
		argIndex++
	}
	if filter.To != nil {
		whereClause += fmt.Sprintf(" AND a.start_time <= $%d", argIndex)
		args = append(args, filter.To.UTC())
		argIndex++
	}
	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND a.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.CustomerID != nil {
		whereClause += fmt.Sprintf(" AND a.customer_id = $%d", argIndex)
		args = append(args, *filter.CustomerID)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND a.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	query := appointmentSelect + whereClause + ` GROUP BY a.id ORDER BY a.start_time ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]appointment.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

// closedOrMissing tells apart a missing appointment from one that is no longer waiting.
func (r *appointmentRepositoryImpl) closedOrMissing(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var status appointment.Status
	err := q.QueryRow(ctx, `SELECT status FROM appointments WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appointment.ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to get appointment status: %w", err)
	}
	return appointment.ErrAppointmentAlreadyClosed
}

// UpdateSchedule implements appointment.AppointmentRepository.
func (r *appointmentRepositoryImpl) UpdateSchedule(ctx context.Context, id string, start, end time.Time, notes string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE appointments
		SET start_time = $1, end_time = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`
	tag, err := q.Exec(ctx, query, start.UTC(), end.UTC(), notes, id, appointment.StatusWaiting)
	if err != nil {
		return fmt.Errorf("failed to update appointment schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.closedOrMissing(ctx, id)
	}
	return nil
}

// UpdateStatus implements appointment.AppointmentRepository.
func (r *appointmentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status appointment.Status, totalPrice decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE appointments
		SET status = $1, total_price = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`
	tag, err := q.Exec(ctx, query, status, totalPrice, id, appointment.StatusWaiting)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.closedOrMissing(ctx, id)
	}
	return nil
}

// CountByStatus implements appointment.AppointmentRepository.
func (r *appointmentRepositoryImpl) CountByStatus(ctx context.Context, status appointment.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
