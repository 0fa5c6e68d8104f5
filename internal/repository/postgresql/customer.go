package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
)

type customerRepositoryImpl struct {
	db *database.DB
}

func NewCustomerRepository(db *database.DB) customer.CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

// Create implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return customer.Customer{}, err
	}

	query := `
		INSERT INTO customers (id, name, phone, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := q.QueryRow(ctx, query, id, c.Name, c.Phone, c.Notes).Scan(&c.ID, &c.CreatedAt); err != nil {
		return customer.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

// GetByID implements customer.CustomerRepository.
func (r *customerRepositoryImpl) GetByID(ctx context.Context, id string) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	var c customer.Customer
	err := q.QueryRow(ctx, `SELECT id, name, phone, notes, created_at FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, customer.ErrCustomerNotFound
		}
		return customer.Customer{}, fmt.Errorf("failed to get customer by id: %w", err)
	}
	return c, nil
}

// List implements customer.CustomerRepository. Search is a case-insensitive
// substring match over name and phone, newest customers first.
func (r *customerRepositoryImpl) List(ctx context.Context, filter customer.CustomerFilter) ([]customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, phone, notes, created_at FROM customers`
	args := []any{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query += ` WHERE (name || ' ' || phone) ILIKE $1`
		args = append(args, "%"+escapeLike(search)+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]customer.Customer, 0)
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Count implements customer.CustomerRepository.
func (r *customerRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// Delete implements customer.CustomerRepository. Appointments that reference
// the customer are left untouched.
func (r *customerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
