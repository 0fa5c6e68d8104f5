package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/pkg/money"
	"github.com/salonpanel/salon-backend-go/internal/pkg/validator"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	"github.com/salonpanel/salon-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc       payroll.PayrollService
	tx        *servicetest.Tx
	salaries  *servicetest.SalaryRecordRepo
	advances  *servicetest.AdvanceRequestRepo
	publisher *servicetest.Publisher
	ctx       context.Context
}

func newFixture(advances ...payroll.AdvanceRequest) *fixture {
	names := map[string]string{"owner": "Owner", "staff": "Zeynep"}
	f := &fixture{
		tx:        &servicetest.Tx{},
		salaries:  servicetest.NewSalaryRecordRepo(),
		advances:  servicetest.NewAdvanceRequestRepo(names, advances...),
		publisher: &servicetest.Publisher{},
		ctx:       auth.WithSession(context.Background(), auth.Session{EmployeeID: "owner", Role: employee.RolePatron}),
	}
	employees := servicetest.NewEmployeeRepo(
		employee.Employee{ID: "owner", Name: "Owner", Role: employee.RolePatron},
		employee.Employee{ID: "staff", Name: "Zeynep", Role: employee.RoleCalisan},
	)
	f.svc = NewPayrollService(f.tx, f.salaries, f.advances, employees, f.publisher, func() time.Time { return fixedNow })
	return f
}

func pending(id string, amount int64) payroll.AdvanceRequest {
	return payroll.AdvanceRequest{
		ID: id, EmployeeID: "staff", Amount: decimal.NewFromInt(amount), Reason: "rent",
		Status: payroll.AdvanceStatusPending, CreatedAt: fixedNow,
	}
}

func TestApproveAdvanceRequest_WritesAdvanceRecord(t *testing.T) {
	f := newFixture(pending("adv-1", 1500))

	resp, err := f.svc.ApproveAdvanceRequest(f.ctx, "adv-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.AdvanceStatusApproved, resp.Status)
	assert.Equal(t, "Zeynep", resp.EmployeeName)
	assert.Equal(t, 1, f.tx.Calls)

	require.Len(t, f.salaries.Rows, 1)
	record := f.salaries.Rows[0]
	assert.Equal(t, "staff", record.EmployeeID)
	assert.Equal(t, payroll.SalaryTypeAdvance, record.Type)
	assert.True(t, decimal.NewFromInt(1500).Equal(record.Amount))
	assert.True(t, record.Approved)
	assert.Equal(t, "Advance request: rent", record.Description)
	assert.Equal(t, []events.Topic{events.TopicAdvanceRequests, events.TopicSalaryRecords}, f.publisher.Topics)
}

func TestAdvanceRequest_TransitionsAreOneWay(t *testing.T) {
	f := newFixture(pending("adv-1", 100), pending("adv-2", 200))

	_, err := f.svc.ApproveAdvanceRequest(f.ctx, "adv-1")
	require.NoError(t, err)
	_, err = f.svc.RejectAdvanceRequest(f.ctx, "adv-2")
	require.NoError(t, err)

	for _, id := range []string{"adv-1", "adv-2"} {
		_, err = f.svc.ApproveAdvanceRequest(f.ctx, id)
		assert.ErrorIs(t, err, payroll.ErrAdvanceRequestAlreadyProcessed)
		_, err = f.svc.RejectAdvanceRequest(f.ctx, id)
		assert.ErrorIs(t, err, payroll.ErrAdvanceRequestAlreadyProcessed)
	}

	assert.Len(t, f.salaries.Rows, 1, "retries must not write another advance record")
}

func TestRejectAdvanceRequest_NoSalaryRecord(t *testing.T) {
	f := newFixture(pending("adv-1", 100))

	resp, err := f.svc.RejectAdvanceRequest(f.ctx, "adv-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.AdvanceStatusRejected, resp.Status)
	assert.Empty(t, f.salaries.Rows)
	assert.Equal(t, []events.Topic{events.TopicAdvanceRequests}, f.publisher.Topics)
}

func TestApproveAdvanceRequest_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ApproveAdvanceRequest(f.ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrAdvanceRequestNotFound)
}

func TestPendingAdvanceCount(t *testing.T) {
	f := newFixture(pending("adv-1", 100), pending("adv-2", 200))

	count, err := f.svc.PendingAdvanceCount(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Pending)

	_, err = f.svc.ApproveAdvanceRequest(f.ctx, "adv-1")
	require.NoError(t, err)

	count, err = f.svc.PendingAdvanceCount(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Pending)
}

func TestCreateMyAdvanceRequest(t *testing.T) {
	f := newFixture()
	ctx := auth.WithSession(context.Background(), auth.Session{EmployeeID: "staff", Role: employee.RoleCalisan})

	resp, err := f.svc.CreateMyAdvanceRequest(ctx, payroll.CreateAdvanceRequestRequest{Amount: money.NewAmount("300"), Reason: " school fees "})
	require.NoError(t, err)
	assert.Equal(t, "staff", resp.EmployeeID)
	assert.Equal(t, payroll.AdvanceStatusPending, resp.Status)
	assert.Equal(t, "school fees", resp.Reason)
	assert.Equal(t, "Zeynep", resp.EmployeeName)

	_, err = f.svc.CreateMyAdvanceRequest(ctx, payroll.CreateAdvanceRequestRequest{Amount: money.NewAmount(0)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("amount"))
}

func TestSalaryRecord_CreateApproveOnce(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateSalaryRecord(f.ctx, payroll.CreateSalaryRecordRequest{
		EmployeeID: "staff", Type: "Prim", Amount: money.NewAmount("750"), Description: "March bonus",
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.SalaryTypeBonus, created.Type)
	assert.False(t, created.Approved)
	assert.Equal(t, "Zeynep", created.EmployeeName)

	approved, err := f.svc.ApproveSalaryRecord(f.ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	_, err = f.svc.ApproveSalaryRecord(f.ctx, created.ID)
	assert.ErrorIs(t, err, payroll.ErrSalaryRecordAlreadyApproved)
}

func TestCreateSalaryRecord_UnknownEmployee(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateSalaryRecord(f.ctx, payroll.CreateSalaryRecordRequest{EmployeeID: "ghost", Type: "salary", Amount: money.NewAmount(1)})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListSalaryRecords_PaginatesNewestFirst(t *testing.T) {
	f := newFixture()
	for i := 0; i < 5; i++ {
		f.salaries.Rows = append(f.salaries.Rows, payroll.SalaryRecord{
			ID: string(rune('a' + i)), EmployeeID: "staff", Type: payroll.SalaryTypeSalary,
			Amount: decimal.NewFromInt(int64(i + 1)), Date: fixedNow.AddDate(0, 0, -i),
		})
	}

	page, err := f.svc.ListSalaryRecords(f.ctx, payroll.SalaryRecordFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "c", page.Data[0].ID)
	assert.Equal(t, "d", page.Data[1].ID)

	defaults, err := f.svc.ListSalaryRecords(f.ctx, payroll.SalaryRecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, 20, defaults.Limit)
}
