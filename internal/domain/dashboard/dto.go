package dashboard

import (
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/shopspring/decimal"
)

type DashboardResponse struct {
	TodayAppointments   []appointment.AppointmentView `json:"today_appointments"`
	WaitingCount        int64                         `json:"waiting_count"`
	CustomerCount       int64                         `json:"customer_count"`
	Month               string                        `json:"month"`
	MonthlyIncome       decimal.Decimal               `json:"monthly_income"`
	MonthlyExpense      decimal.Decimal               `json:"monthly_expense"`
	MonthlyNet          decimal.Decimal               `json:"monthly_net"`
	PendingAdvanceCount int64                         `json:"pending_advance_count"`
	GeneratedAt         time.Time                     `json:"generated_at"`
}
