package dashboard

import (
	"context"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/dashboard"
	"github.com/salonpanel/salon-backend-go/internal/domain/ledger"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	appointments appointment.AppointmentService
	ledger       ledger.LedgerService
	customerRepo customer.CustomerRepository
	advanceRepo  payroll.AdvanceRequestRepository
	clock        func() time.Time
}

func NewDashboardService(
	appointments appointment.AppointmentService,
	ledgerService ledger.LedgerService,
	customerRepo customer.CustomerRepository,
	advanceRepo payroll.AdvanceRequestRepository,
	clock func() time.Time,
) dashboard.DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardServiceImpl{
		appointments: appointments,
		ledger:       ledgerService,
		customerRepo: customerRepo,
		advanceRepo:  advanceRepo,
		clock:        clock,
	}
}

// GetDashboard assembles the home screen from four independent reads run in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	var (
		overview       appointment.OverviewResponse
		monthly        ledger.MonthlyResponse
		customerCount  int64
		pendingAdvance int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Today's and waiting appointments
	g.Go(func() error {
		var err error
		overview, err = s.appointments.Overview(gCtx)
		return err
	})

	// 2. Current month income and expense
	g.Go(func() error {
		var err error
		monthly, err = s.ledger.Monthly(gCtx)
		return err
	})

	// 3. Customer count
	g.Go(func() error {
		var err error
		customerCount, err = s.customerRepo.Count(gCtx)
		return err
	})

	// 4. Pending advance requests
	g.Go(func() error {
		var err error
		pendingAdvance, err = s.advanceRepo.CountByStatus(gCtx, payroll.AdvanceStatusPending)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	return dashboard.DashboardResponse{
		TodayAppointments:   overview.Today,
		WaitingCount:        int64(overview.WaitingCount),
		CustomerCount:       customerCount,
		Month:               monthly.Month,
		MonthlyIncome:       monthly.Totals.Income,
		MonthlyExpense:      monthly.Totals.Expense,
		MonthlyNet:          monthly.Totals.Net,
		PendingAdvanceCount: pendingAdvance,
		GeneratedAt:         s.clock().UTC(),
	}, nil
}
