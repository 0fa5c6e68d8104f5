package ledger

import (
	"testing"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthlyIncomeExpense_CanceledContributesNothing(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	inMonth := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	txns := []transaction.Transaction{
		{ID: "1", Type: transaction.TypeIncome, Amount: dec("500"), Date: inMonth},
		{ID: "2", Type: transaction.TypeIncome, Amount: dec("300"), Date: inMonth, Canceled: true},
		{ID: "3", Type: transaction.TypeExpense, Amount: dec("120.5"), Date: inMonth},
		{ID: "4", Type: transaction.TypeExpense, Amount: dec("999"), Date: inMonth, Canceled: true},
		{ID: "5", Type: "kira", Amount: dec("30"), Date: inMonth},
		{ID: "6", Type: transaction.TypeIncome, Amount: dec("1000"), Date: time.Date(2024, 2, 28, 10, 0, 0, 0, time.UTC)},
		{ID: "7", Type: transaction.TypeIncome, Amount: dec("1000")},
	}

	summary := MonthlyIncomeExpense(txns, now, time.UTC)
	assert.Equal(t, "500", summary.Income.String())
	assert.Equal(t, "150.5", summary.Expense.String())
	assert.Equal(t, "349.5", summary.Net.String())
	assert.Len(t, summary.Transactions, 5)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, time.March, summary.Month)
}

func TestMonthlyIncomeExpense_MonthBoundaryInBusinessLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	// 1 April 01:00 in Istanbul, still 31 March in UTC.
	now := time.Date(2024, 3, 31, 22, 0, 0, 0, time.UTC)
	txns := []transaction.Transaction{
		{Type: transaction.TypeIncome, Amount: dec("100"), Date: time.Date(2024, 3, 31, 21, 30, 0, 0, time.UTC)},
		{Type: transaction.TypeIncome, Amount: dec("70"), Date: time.Date(2024, 3, 31, 20, 30, 0, 0, time.UTC)},
	}

	summary := MonthlyIncomeExpense(txns, now, loc)
	assert.Equal(t, "100", summary.Income.String())
	assert.Equal(t, time.April, summary.Month)
}

func TestRangeFilter_EndOfDayInclusive(t *testing.T) {
	from, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	to, err := time.Parse("2006-01-02", "2024-01-31")
	require.NoError(t, err)

	txns := []transaction.Transaction{
		{ID: "first-instant", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "last-second", Date: time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)},
		{ID: "next-month", Date: time.Date(2024, 2, 1, 0, 0, 0, int(time.Millisecond), time.UTC)},
		{ID: "before", Date: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)},
		{ID: "no-date"},
	}

	got := RangeFilter(txns, from, to)
	require.Len(t, got, 2)
	assert.Equal(t, "first-instant", got[0].ID)
	assert.Equal(t, "last-second", got[1].ID)
}

func TestRangeRequest_Resolve(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	from, to, err := RangeRequest{From: "2024-01-01", To: "2024-01-31"}.Resolve(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 21, 0, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, time.Date(2024, 1, 30, 21, 0, 0, 0, time.UTC), to.UTC())

	_, _, err = RangeRequest{From: "2024-02-01", To: "2024-01-01"}.Resolve(loc)
	assert.Error(t, err)

	_, _, err = RangeRequest{From: "yesterday", To: ""}.Resolve(loc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
	assert.Contains(t, err.Error(), "to")
}

func TestEmployeeSalarySummary_ExcludesUnapproved(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)

	emp := employee.Employee{ID: "emp-1", Name: "Elif", Salary: dec("10000")}
	records := []payroll.SalaryRecord{
		{ID: "a", EmployeeID: "emp-1", Type: payroll.SalaryTypeAdvance, Amount: dec("1500"), Approved: true, Date: thisMonth},
		{ID: "b", EmployeeID: "emp-1", Type: payroll.SalaryTypeAdvance, Amount: dec("5000"), Approved: false, Date: thisMonth},
		{ID: "c", EmployeeID: "emp-1", Type: "PRIM", Amount: dec("750"), Approved: true, Date: thisMonth},
		{ID: "d", EmployeeID: "emp-1", Type: "Avans", Amount: dec("400"), Approved: true, Date: lastMonth},
		{ID: "e", EmployeeID: "emp-2", Type: payroll.SalaryTypeAdvance, Amount: dec("800"), Approved: true, Date: thisMonth},
		{ID: "f", EmployeeID: "emp-1", Type: payroll.SalaryTypeSalary, Amount: dec("10000"), Approved: true, Date: thisMonth},
	}

	s := EmployeeSalarySummary(emp, records, now, time.UTC)
	assert.Equal(t, "10000", s.Gross.String())
	assert.Equal(t, "1500", s.AdvanceTotal.String())
	assert.Equal(t, "750", s.BonusTotal.String())
	assert.Equal(t, "8500", s.Net.String())
	assert.Len(t, s.Monthly, 3)
	assert.Len(t, s.AllRecords, 4)
	for _, r := range s.AllRecords {
		assert.True(t, r.Approved)
	}
}

func TestAllEmployeeSalaries(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	emps := []employee.Employee{
		{ID: "emp-1", Salary: dec("5000")},
		{ID: "emp-2"},
	}
	out := AllEmployeeSalaries(emps, nil, now, time.UTC)
	require.Len(t, out, 2)
	assert.Equal(t, "5000", out[0].Net.String())
	assert.True(t, out[1].Net.IsZero())
	assert.NotNil(t, out[1].Monthly)
}
