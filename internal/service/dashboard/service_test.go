package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/ledger"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAppointments struct {
	appointment.AppointmentService
	overview appointment.OverviewResponse
	err      error
}

func (s stubAppointments) Overview(context.Context) (appointment.OverviewResponse, error) {
	return s.overview, s.err
}

type stubLedger struct {
	ledger.LedgerService
	monthly ledger.MonthlyResponse
}

func (s stubLedger) Monthly(context.Context) (ledger.MonthlyResponse, error) {
	return s.monthly, nil
}

func TestGetDashboard(t *testing.T) {
	appointments := stubAppointments{overview: appointment.OverviewResponse{
		Today:        []appointment.AppointmentView{{ID: "a1"}, {ID: "a2"}},
		WaitingCount: 3,
	}}
	monthly := stubLedger{monthly: ledger.MonthlyResponse{
		Month: "2025-03",
		Totals: ledger.TotalsResponse{
			Income:  decimal.NewFromInt(5000),
			Expense: decimal.NewFromInt(1200),
			Net:     decimal.NewFromInt(3800),
		},
	}}
	customers := servicetest.NewCustomerRepo(customer.Customer{ID: "c1", Name: "Elif"}, customer.Customer{ID: "c2", Name: "Ayse"})
	advances := servicetest.NewAdvanceRequestRepo(nil,
		payroll.AdvanceRequest{ID: "adv-1", Status: payroll.AdvanceStatusPending},
		payroll.AdvanceRequest{ID: "adv-2", Status: payroll.AdvanceStatusApproved},
	)

	svc := NewDashboardService(appointments, monthly, customers, advances, func() time.Time { return servicetest.Now })
	resp, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Len(t, resp.TodayAppointments, 2)
	assert.Equal(t, int64(3), resp.WaitingCount)
	assert.Equal(t, int64(2), resp.CustomerCount)
	assert.Equal(t, "2025-03", resp.Month)
	assert.True(t, decimal.NewFromInt(3800).Equal(resp.MonthlyNet))
	assert.Equal(t, int64(1), resp.PendingAdvanceCount)
	assert.Equal(t, servicetest.Now, resp.GeneratedAt)
}

func TestGetDashboard_PropagatesErrors(t *testing.T) {
	boom := errors.New("appointments unavailable")
	svc := NewDashboardService(
		stubAppointments{err: boom},
		stubLedger{},
		servicetest.NewCustomerRepo(),
		servicetest.NewAdvanceRequestRepo(nil),
		nil,
	)

	_, err := svc.GetDashboard(context.Background())
	assert.ErrorIs(t, err, boom)
}
