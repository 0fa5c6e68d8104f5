package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type serviceRepositoryImpl struct {
	db *database.DB
}

func NewServiceRepository(db *database.DB) catalog.ServiceRepository {
	return &serviceRepositoryImpl{db: db}
}

const serviceColumns = `id, title, duration_minutes, price, created_at, updated_at`

func scanService(row pgx.Row) (catalog.Service, error) {
	var s catalog.Service
	err := row.Scan(&s.ID, &s.Title, &s.DurationMinutes, &s.Price, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) Create(ctx context.Context, s catalog.Service) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return catalog.Service{}, err
	}

	query := `
		INSERT INTO services (id, title, duration_minutes, price)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + serviceColumns

	created, err := scanService(q.QueryRow(ctx, query, id, s.Title, s.DurationMinutes, s.Price))
	if err != nil {
		return catalog.Service{}, fmt.Errorf("failed to create service: %w", err)
	}
	return created, nil
}

// GetByID implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanService(q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, fmt.Errorf("failed to get service by id: %w", err)
	}
	return s, nil
}

// List implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) List(ctx context.Context) ([]catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]catalog.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// UpdatePrice implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE services SET price = $1, updated_at = NOW() WHERE id = $2`, price, id)
	if err != nil {
		return fmt.Errorf("failed to update service price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

// Delete implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}
