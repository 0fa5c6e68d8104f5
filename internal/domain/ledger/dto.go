package ledger

import (
	"fmt"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type TotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func ToTotalsResponse(t Totals) TotalsResponse {
	return TotalsResponse{Income: t.Income, Expense: t.Expense, Net: t.Net}
}

type MonthlyResponse struct {
	Month        string                            `json:"month"`
	Totals       TotalsResponse                    `json:"totals"`
	Transactions []transaction.TransactionResponse `json:"transactions"`
}

func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

type RangeRequest struct {
	From string
	To   string
}

// Resolve parses both dates as midnight in loc.
func (r RangeRequest) Resolve(loc *time.Location) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	from, err := timeutil.ParseDate(r.From, loc)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be a date in YYYY-MM-DD format"})
	}
	to, err := timeutil.ParseDate(r.To, loc)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be a date in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

type RangeResponse struct {
	From         string                            `json:"from"`
	To           string                            `json:"to"`
	Totals       TotalsResponse                    `json:"totals"`
	Transactions []transaction.TransactionResponse `json:"transactions"`
}

type SalarySummaryResponse struct {
	EmployeeID   string                         `json:"employee_id"`
	EmployeeName string                         `json:"employee_name"`
	Gross        decimal.Decimal                `json:"gross_salary"`
	AdvanceTotal decimal.Decimal                `json:"advance_total"`
	BonusTotal   decimal.Decimal                `json:"bonus_total"`
	Net          decimal.Decimal                `json:"net_salary"`
	Monthly      []payroll.SalaryRecordResponse `json:"monthly"`
	AllRecords   []payroll.SalaryRecordResponse `json:"all_records"`
}

func ToSalarySummaryResponse(s SalarySummary) SalarySummaryResponse {
	monthly := make([]payroll.SalaryRecordResponse, 0, len(s.Monthly))
	for _, r := range s.Monthly {
		monthly = append(monthly, payroll.ToSalaryRecordResponse(r, s.EmployeeName))
	}
	all := make([]payroll.SalaryRecordResponse, 0, len(s.AllRecords))
	for _, r := range s.AllRecords {
		all = append(all, payroll.ToSalaryRecordResponse(r, s.EmployeeName))
	}
	return SalarySummaryResponse{
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		Gross:        s.Gross,
		AdvanceTotal: s.AdvanceTotal,
		BonusTotal:   s.BonusTotal,
		Net:          s.Net,
		Monthly:      monthly,
		AllRecords:   all,
	}
}
