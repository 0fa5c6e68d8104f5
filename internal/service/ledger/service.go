package ledger

import (
	"context"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/ledger"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/shared"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

type LedgerServiceImpl struct {
	transactionRepo transaction.TransactionRepository
	salaryRepo      payroll.SalaryRecordRepository
	employeeRepo    employee.EmployeeRepository
	loc             *time.Location
	clock           func() time.Time
}

func NewLedgerService(
	transactionRepo transaction.TransactionRepository,
	salaryRepo payroll.SalaryRecordRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
	clock func() time.Time,
) ledger.LedgerService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &LedgerServiceImpl{
		transactionRepo: transactionRepo,
		salaryRepo:      salaryRepo,
		employeeRepo:    employeeRepo,
		loc:             loc,
		clock:           clock,
	}
}

// transactionsWithNames loads live transactions in [from, to] alongside the creator name index.
func (s *LedgerServiceImpl) transactionsWithNames(ctx context.Context, from, to time.Time) ([]transaction.Transaction, map[string]string, error) {
	var (
		txns      []transaction.Transaction
		employees []employee.Employee
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.transactionRepo.List(gctx, transaction.TransactionFilter{From: &from, To: &to})
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gctx, employee.EmployeeFilter{IncludeGuests: true})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return txns, employee.NameIndex(employees), nil
}

func toResponses(txns []transaction.Transaction, names map[string]string) []transaction.TransactionResponse {
	out := make([]transaction.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, transaction.ToResponse(t, names, shared.UnknownName))
	}
	return out
}

func (s *LedgerServiceImpl) Monthly(ctx context.Context) (ledger.MonthlyResponse, error) {
	now := s.clock()
	start, next := timeutil.MonthRange(now, s.loc)

	txns, names, err := s.transactionsWithNames(ctx, start, next.Add(-time.Millisecond))
	if err != nil {
		return ledger.MonthlyResponse{}, err
	}

	summary := ledger.MonthlyIncomeExpense(txns, now, s.loc)
	return ledger.MonthlyResponse{
		Month:        ledger.MonthLabel(summary.Year, summary.Month),
		Totals:       ledger.ToTotalsResponse(summary.Totals),
		Transactions: toResponses(summary.Transactions, names),
	}, nil
}

func (s *LedgerServiceImpl) TransactionsInRange(ctx context.Context, req ledger.RangeRequest) (ledger.RangeResponse, error) {
	from, to, err := req.Resolve(s.loc)
	if err != nil {
		return ledger.RangeResponse{}, err
	}

	txns, names, err := s.transactionsWithNames(ctx, from, timeutil.EndOfDay(to))
	if err != nil {
		return ledger.RangeResponse{}, err
	}

	inRange := ledger.RangeFilter(txns, from, to)
	return ledger.RangeResponse{
		From:         req.From,
		To:           req.To,
		Totals:       ledger.ToTotalsResponse(ledger.Sum(inRange)),
		Transactions: toResponses(inRange, names),
	}, nil
}

func (s *LedgerServiceImpl) Salaries(ctx context.Context) ([]ledger.SalarySummaryResponse, error) {
	var (
		employees []employee.Employee
		records   []payroll.SalaryRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gctx, employee.EmployeeFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.salaryRepo.ListApproved(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := ledger.AllEmployeeSalaries(employees, records, s.clock(), s.loc)
	out := make([]ledger.SalarySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, ledger.ToSalarySummaryResponse(summary))
	}
	return out, nil
}
