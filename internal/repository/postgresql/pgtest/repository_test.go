package pgtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/fixtures"
	"github.com/salonpanel/salon-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasswordHash = "$2a$04$testtesttesttesttesttuG2bq4Yl7VYtW0bdf1lPKFRK5ZC0P6W"

func seed(t *testing.T, setup *TestDatabaseSetup) *fixtures.SeededDataIDs {
	t.Helper()
	ids, err := fixtures.Seed(
		context.Background(),
		postgresql.NewEmployeeRepository(setup.DB),
		postgresql.NewServiceRepository(setup.DB),
		postgresql.NewCustomerRepository(setup.DB),
		testPasswordHash,
	)
	require.NoError(t, err)
	return ids
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seed(t, setup)
	repo := postgresql.NewEmployeeRepository(setup.DB)
	ctx := context.Background()

	t.Run("email lookup ignores case", func(t *testing.T) {
		emp, err := repo.GetByEmail(ctx, "PATRON@Salon.test")
		require.NoError(t, err)
		assert.Equal(t, ids.OwnerID(), emp.ID)
		assert.Equal(t, employee.RolePatron, emp.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{
			Name:         "Kopya",
			Email:        "Ayse@salon.test",
			PasswordHash: testPasswordHash,
			Role:         employee.RoleMisafir,
		})
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("list hides guests unless asked", func(t *testing.T) {
		staff, err := repo.List(ctx, employee.EmployeeFilter{})
		require.NoError(t, err)
		assert.Len(t, staff, 2)

		all, err := repo.List(ctx, employee.EmployeeFilter{IncludeGuests: true})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("financials round trip", func(t *testing.T) {
		err := repo.UpdateFinancials(ctx, ids.StylistID(), employee.Financials{
			Salary:         decimal.NewFromInt(30000),
			CommissionRate: decimal.RequireFromString("12.5"),
			AdvanceBalance: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)

		emp, err := repo.GetByID(ctx, ids.StylistID())
		require.NoError(t, err)
		assert.True(t, emp.Salary.Equal(decimal.NewFromInt(30000)))
		assert.True(t, emp.CommissionRate.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("update missing employee", func(t *testing.T) {
		err := repo.UpdateRole(ctx, "missing", employee.RoleCalisan)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	count, err := repo.CountByRole(ctx, employee.RolePatron)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCustomerRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seed(t, setup)
	repo := postgresql.NewCustomerRepository(setup.DB)
	ctx := context.Background()

	found, err := repo.List(ctx, customer.CustomerFilter{Search: "0555111"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "İpek Demir", found[0].Name)

	id := ids.CustomerIDs["05551112233"]
	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), customer.ErrCustomerNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAppointmentRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seed(t, setup)
	repo := postgresql.NewAppointmentRepository(setup.DB)
	ctx := context.Background()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	serviceIDs := []string{ids.ServiceIDs["Saç Boyama"], ids.ServiceIDs["Saç Kesimi"]}
	created, err := repo.Create(ctx, appointment.Appointment{
		EmployeeID: ids.StylistID(),
		CustomerID: ids.CustomerIDs["05554445566"],
		ServiceIDs: serviceIDs,
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Status:     appointment.StatusWaiting,
		CreatedBy:  ids.OwnerID(),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, serviceIDs, got.ServiceIDs)
	assert.True(t, got.StartTime.Equal(start))

	from := start.Add(-time.Hour)
	to := start.Add(time.Hour)
	listed, err := repo.List(ctx, appointment.AppointmentFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, appointment.StatusCompleted, decimal.NewFromInt(1150)))
	err = repo.UpdateStatus(ctx, created.ID, appointment.StatusCanceled, decimal.Zero)
	assert.ErrorIs(t, err, appointment.ErrAppointmentAlreadyClosed)

	err = repo.UpdateSchedule(ctx, "missing", start, start, "")
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)

	waiting, err := repo.CountByStatus(ctx, appointment.StatusWaiting)
	require.NoError(t, err)
	assert.Zero(t, waiting)
}

func TestTransactionRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewTransactionRepository(setup.DB)
	ctx := context.Background()

	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	income, err := repo.Create(ctx, transaction.Transaction{
		Type: transaction.TypeIncome, Amount: decimal.NewFromInt(500), Date: day,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, transaction.Transaction{
		Type: transaction.TypeExpense, Amount: decimal.NewFromInt(120), Date: day.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Cancel(ctx, income.ID))
	assert.ErrorIs(t, repo.Cancel(ctx, income.ID), transaction.ErrTransactionAlreadyCanceled)
	assert.ErrorIs(t, repo.Cancel(ctx, "missing"), transaction.ErrTransactionNotFound)

	live, err := repo.List(ctx, transaction.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, transaction.TypeExpense, live[0].Type)

	all, err := repo.List(ctx, transaction.TransactionFilter{IncludeCanceled: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdvanceRequestRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seed(t, setup)
	repo := postgresql.NewAdvanceRequestRepository(setup.DB)
	ctx := context.Background()

	req, err := repo.Create(ctx, payroll.AdvanceRequest{
		EmployeeID: ids.StylistID(),
		Amount:     decimal.NewFromInt(2000),
		Reason:     "kira",
		Status:     payroll.AdvanceStatusPending,
	})
	require.NoError(t, err)
	assert.Empty(t, req.EmployeeName)

	fetched, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", fetched.EmployeeName)

	pending, err := repo.CountByStatus(ctx, payroll.AdvanceStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	require.NoError(t, repo.UpdateStatus(ctx, req.ID, payroll.AdvanceStatusApproved, ids.OwnerID()))
	err = repo.UpdateStatus(ctx, req.ID, payroll.AdvanceStatusRejected, ids.OwnerID())
	assert.ErrorIs(t, err, payroll.ErrAdvanceRequestAlreadyProcessed)

	list, total, err := repo.List(ctx, payroll.AdvanceRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Ayşe Yılmaz", list[0].EmployeeName)
	assert.Equal(t, payroll.AdvanceStatusApproved, list[0].Status)
	require.NotNil(t, list[0].ProcessedBy)
	assert.Equal(t, ids.OwnerID(), *list[0].ProcessedBy)
}

func TestTransactorRollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	tx := postgresql.NewTransactor(setup.DB)
	repo := postgresql.NewCustomerRepository(setup.DB)
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, customer.Customer{Name: "Geçici", Phone: "05000000000"}); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRefreshTokenRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ids := seed(t, setup)
	repo := postgresql.NewJWTRepository(setup.DB)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).Unix()
	require.NoError(t, repo.CreateRefreshToken(ctx, ids.OwnerID(), "refresh-token", expires, auth.SessionTrackingRequest{
		UserAgent: "test", IPAddress: "127.0.0.1",
	}))

	owner, revoked, err := repo.IsRefreshTokenRevoked(ctx, "refresh-token")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, ids.OwnerID(), owner)

	require.NoError(t, repo.RevokeRefreshToken(ctx, "refresh-token"))
	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "refresh-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, revoked, err = repo.IsRefreshTokenRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.True(t, revoked)
}
