package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/shared"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
)

type TransactionServiceImpl struct {
	transactionRepo transaction.TransactionRepository
	employeeRepo    employee.EmployeeRepository
	publisher       events.Publisher
	clock           func() time.Time
}

func NewTransactionService(
	transactionRepo transaction.TransactionRepository,
	employeeRepo employee.EmployeeRepository,
	publisher events.Publisher,
	clock func() time.Time,
) transaction.TransactionService {
	if clock == nil {
		clock = time.Now
	}
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		employeeRepo:    employeeRepo,
		publisher:       publisher,
		clock:           clock,
	}
}

func (s *TransactionServiceImpl) employeeNames(ctx context.Context) (map[string]string, error) {
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{IncludeGuests: true})
	if err != nil {
		return nil, err
	}
	return employee.NameIndex(employees), nil
}

// ListTransactions implements transaction.TransactionService.
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, filter transaction.TransactionFilter) ([]transaction.TransactionResponse, error) {
	txns, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names, err := s.employeeNames(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]transaction.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		resp = append(resp, transaction.ToResponse(t, names, shared.UnknownName))
	}
	return resp, nil
}

// CreateTransaction implements transaction.TransactionService.
func (s *TransactionServiceImpl) CreateTransaction(ctx context.Context, req transaction.CreateTransactionRequest) (transaction.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return transaction.TransactionResponse{}, err
	}
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return transaction.TransactionResponse{}, err
	}

	txnType, err := transaction.ParseType(req.Type)
	if err != nil {
		return transaction.TransactionResponse{}, err
	}

	created, err := s.transactionRepo.Create(ctx, transaction.Transaction{
		Type:        txnType,
		Amount:      req.Amount.Decimal(),
		Description: strings.TrimSpace(req.Description),
		Date:        s.clock().UTC(),
		CreatedBy:   session.EmployeeID,
	})
	if err != nil {
		return transaction.TransactionResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicTransactions)

	names, err := s.employeeNames(ctx)
	if err != nil {
		return transaction.TransactionResponse{}, err
	}
	return transaction.ToResponse(created, names, shared.UnknownName), nil
}

// CancelTransaction implements transaction.TransactionService.
func (s *TransactionServiceImpl) CancelTransaction(ctx context.Context, id string) (transaction.TransactionResponse, error) {
	if err := s.transactionRepo.Cancel(ctx, id); err != nil {
		return transaction.TransactionResponse{}, err
	}

	s.publisher.Publish(ctx, events.TopicTransactions)

	canceled, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return transaction.TransactionResponse{}, err
	}
	names, err := s.employeeNames(ctx)
	if err != nil {
		return transaction.TransactionResponse{}, err
	}
	return transaction.ToResponse(canceled, names, shared.UnknownName), nil
}
