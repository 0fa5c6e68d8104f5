package ledger

import (
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// Sum totals the non-canceled transactions of txns.
func Sum(txns []transaction.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txns {
		if t.Canceled {
			continue
		}
		amount := money.Normalize(t.Amount)
		if t.IsIncome() {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
	}
	return Totals{Income: income, Expense: expense, Net: income.Sub(expense)}
}

type MonthlySummary struct {
	Totals
	Year         int
	Month        time.Month
	Transactions []transaction.Transaction
}

// MonthlyIncomeExpense totals the transactions dated in now's calendar month in loc.
// Transactions without a valid date never count.
func MonthlyIncomeExpense(txns []transaction.Transaction, now time.Time, loc *time.Location) MonthlySummary {
	monthly := make([]transaction.Transaction, 0)
	for _, t := range txns {
		if timeutil.SameMonth(t.Date, now, loc) {
			monthly = append(monthly, t)
		}
	}

	local := now
	if loc != nil {
		local = now.In(loc)
	}
	return MonthlySummary{
		Totals:       Sum(monthly),
		Year:         local.Year(),
		Month:        local.Month(),
		Transactions: monthly,
	}
}

// RangeFilter keeps transactions dated from `from` through the end of `to`'s
// day (23:59:59.999 in to's location), both ends inclusive.
func RangeFilter(txns []transaction.Transaction, from, to time.Time) []transaction.Transaction {
	end := timeutil.EndOfDay(to)
	out := make([]transaction.Transaction, 0)
	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		if t.Date.Before(from) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

type SalarySummary struct {
	EmployeeID   string
	EmployeeName string
	Gross        decimal.Decimal
	AdvanceTotal decimal.Decimal
	BonusTotal   decimal.Decimal
	Net          decimal.Decimal
	Monthly      []payroll.SalaryRecord
	AllRecords   []payroll.SalaryRecord
}

// EmployeeSalarySummary derives the current month's payroll figures for emp.
// Only approved records count, in the monthly view and in the all-time view.
func EmployeeSalarySummary(emp employee.Employee, records []payroll.SalaryRecord, now time.Time, loc *time.Location) SalarySummary {
	summary := SalarySummary{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Gross:        money.Normalize(emp.Salary),
		AdvanceTotal: decimal.Zero,
		BonusTotal:   decimal.Zero,
		Monthly:      make([]payroll.SalaryRecord, 0),
		AllRecords:   make([]payroll.SalaryRecord, 0),
	}

	for _, r := range records {
		if r.EmployeeID != emp.ID || !r.Approved {
			continue
		}
		summary.AllRecords = append(summary.AllRecords, r)

		if !timeutil.SameMonth(r.Date, now, loc) {
			continue
		}
		summary.Monthly = append(summary.Monthly, r)

		amount := money.Normalize(r.Amount)
		switch {
		case r.Type.Is(payroll.SalaryTypeAdvance):
			summary.AdvanceTotal = summary.AdvanceTotal.Add(amount)
		case r.Type.Is(payroll.SalaryTypeBonus):
			summary.BonusTotal = summary.BonusTotal.Add(amount)
		}
	}

	summary.Net = summary.Gross.Sub(summary.AdvanceTotal)
	return summary
}

func AllEmployeeSalaries(emps []employee.Employee, records []payroll.SalaryRecord, now time.Time, loc *time.Location) []SalarySummary {
	out := make([]SalarySummary, 0, len(emps))
	for _, e := range emps {
		out = append(out, EmployeeSalarySummary(e, records, now, loc))
	}
	return out
}
