package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
)

type transactionRepositoryImpl struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) transaction.TransactionRepository {
	return &transactionRepositoryImpl{db: db}
}

const transactionColumns = `id, type, amount, description, date, canceled, created_by, appointment_id, created_at`

func scanTransaction(row pgx.Row) (transaction.Transaction, error) {
	var t transaction.Transaction
	err := row.Scan(
		&t.ID,
		&t.Type,
		&t.Amount,
		&t.Description,
		&t.Date,
		&t.Canceled,
		&t.CreatedBy,
		&t.AppointmentID,
		&t.CreatedAt,
	)
	return t, err
}

// Create implements transaction.TransactionRepository.
func (r *transactionRepositoryImpl) Create(ctx context.Context, t transaction.Transaction) (transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return transaction.Transaction{}, err
	}
	t.ID = id

	query := `
		INSERT INTO transactions (id, type, amount, description, date, canceled, created_by, appointment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query,
		t.ID, t.Type, t.Amount, t.Description, t.Date.UTC(), t.Canceled, t.CreatedBy, t.AppointmentID,
	).Scan(&t.CreatedAt)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return t, nil
}

// GetByID implements transaction.TransactionRepository.
func (r *transactionRepositoryImpl) GetByID(ctx context.Context, id string) (transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return transaction.Transaction{}, transaction.ErrTransactionNotFound
		}
		return transaction.Transaction{}, fmt.Errorf("failed to get transaction by id: %w", err)
	}
	return t, nil
}

// List implements transaction.TransactionRepository.
func (r *transactionRepositoryImpl) List(ctx context.Context, filter transaction.TransactionFilter) ([]transaction.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.From != nil {
		whereClause += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, filter.From.UTC())
		argIndex++
	}
	if filter.To != nil {
		whereClause += fmt.Sprintf(" AND date <= $%d", argIndex)
		args = append(args, filter.To.UTC())
		argIndex++
	}
	if !filter.IncludeCanceled {
		whereClause += " AND canceled = FALSE"
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions ` + whereClause + ` ORDER BY date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]transaction.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Cancel implements transaction.TransactionRepository.
func (r *transactionRepositoryImpl) Cancel(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE transactions SET canceled = TRUE WHERE id = $1 AND canceled = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check transaction: %w", err)
	}
	if !exists {
		return transaction.ErrTransactionNotFound
	}
	return transaction.ErrTransactionAlreadyCanceled
}
