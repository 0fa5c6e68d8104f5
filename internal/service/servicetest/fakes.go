// Package servicetest holds in-memory repository fakes shared by the service tests.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/service/events"
	"github.com/shopspring/decimal"
)

// Now is the fixed creation time stamped by the fakes.
var Now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type ids struct {
	mu   sync.Mutex
	next int
}

func (g *ids) id(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", prefix, g.next)
}

// Tx runs fn directly; it counts calls so tests can assert a unit of work was used.
type Tx struct {
	Calls int
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// Publisher records published topics in order.
type Publisher struct {
	mu     sync.Mutex
	Topics []events.Topic
}

func (p *Publisher) Publish(ctx context.Context, topics ...events.Topic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Topics = append(p.Topics, topics...)
}

// ========== EMPLOYEES ==========

type EmployeeRepo struct {
	ids
	mu   sync.Mutex
	Rows map[string]employee.Employee
}

func NewEmployeeRepo(seed ...employee.Employee) *EmployeeRepo {
	r := &EmployeeRepo{Rows: make(map[string]employee.Employee)}
	for _, e := range seed {
		r.Rows[e.ID] = e
	}
	return r
}

func (r *EmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Rows {
		if strings.EqualFold(e.Email, emp.Email) {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	emp.ID = r.id("emp")
	emp.CreatedAt, emp.UpdatedAt = Now, Now
	r.Rows[emp.ID] = emp
	return emp, nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.Rows {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.Rows))
	for _, e := range r.Rows {
		if !filter.IncludeGuests && e.Role == employee.RoleMisafir {
			continue
		}
		if filter.Role != nil && e.Role != *filter.Role {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *EmployeeRepo) CountByRole(ctx context.Context, role employee.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.Rows {
		if e.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *EmployeeRepo) update(id string, fn func(e *employee.Employee)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Rows[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	fn(&e)
	r.Rows[id] = e
	return nil
}

func (r *EmployeeRepo) UpdateRole(ctx context.Context, id string, role employee.Role) error {
	return r.update(id, func(e *employee.Employee) { e.Role = role })
}

func (r *EmployeeRepo) UpdateFinancials(ctx context.Context, id string, f employee.Financials) error {
	return r.update(id, func(e *employee.Employee) {
		e.Salary, e.CommissionRate, e.AdvanceBalance = f.Salary, f.CommissionRate, f.AdvanceBalance
	})
}

func (r *EmployeeRepo) UpdateProfile(ctx context.Context, id, name, phone string) error {
	return r.update(id, func(e *employee.Employee) { e.Name, e.Phone = name, phone })
}

func (r *EmployeeRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.update(id, func(e *employee.Employee) { e.PasswordHash = passwordHash })
}

// ========== CUSTOMERS ==========

type CustomerRepo struct {
	ids
	mu   sync.Mutex
	Rows []customer.Customer
}

func NewCustomerRepo(seed ...customer.Customer) *CustomerRepo {
	return &CustomerRepo{Rows: append([]customer.Customer{}, seed...)}
}

func (r *CustomerRepo) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id("cust")
	c.CreatedAt = Now
	r.Rows = append(r.Rows, c)
	return c, nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Rows {
		if c.ID == id {
			return c, nil
		}
	}
	return customer.Customer{}, customer.ErrCustomerNotFound
}

func (r *CustomerRepo) List(ctx context.Context, filter customer.CustomerFilter) ([]customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return customer.Filter(r.Rows, filter.Search), nil
}

func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.Rows)), nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.Rows {
		if c.ID == id {
			r.Rows = append(r.Rows[:i], r.Rows[i+1:]...)
			return nil
		}
	}
	return customer.ErrCustomerNotFound
}

// ========== SERVICES ==========

type ServiceRepo struct {
	ids
	mu   sync.Mutex
	Rows []catalog.Service
}

func NewServiceRepo(seed ...catalog.Service) *ServiceRepo {
	return &ServiceRepo{Rows: append([]catalog.Service{}, seed...)}
}

func (r *ServiceRepo) Create(ctx context.Context, s catalog.Service) (catalog.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id("svc")
	s.CreatedAt, s.UpdatedAt = Now, Now
	r.Rows = append(r.Rows, s)
	return s, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.Rows {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Service{}, catalog.ErrServiceNotFound
}

func (r *ServiceRepo) List(ctx context.Context) ([]catalog.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]catalog.Service{}, r.Rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *ServiceRepo) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Rows {
		if r.Rows[i].ID == id {
			r.Rows[i].Price = price
			return nil
		}
	}
	return catalog.ErrServiceNotFound
}

func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.Rows {
		if s.ID == id {
			r.Rows = append(r.Rows[:i], r.Rows[i+1:]...)
			return nil
		}
	}
	return catalog.ErrServiceNotFound
}

// ========== APPOINTMENTS ==========

type AppointmentRepo struct {
	ids
	mu   sync.Mutex
	Rows map[string]appointment.Appointment
}

func NewAppointmentRepo(seed ...appointment.Appointment) *AppointmentRepo {
	r := &AppointmentRepo{Rows: make(map[string]appointment.Appointment)}
	for _, a := range seed {
		r.Rows[a.ID] = a
	}
	return r
}

func (r *AppointmentRepo) Create(ctx context.Context, a appointment.Appointment) (appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.id("appt")
	a.CreatedAt, a.UpdatedAt = Now, Now
	r.Rows[a.ID] = a
	return a, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Rows[id]
	if !ok {
		return appointment.Appointment{}, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter appointment.AppointmentFilter) ([]appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]appointment.Appointment, 0, len(r.Rows))
	for _, a := range r.Rows {
		if filter.From != nil && a.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.StartTime.After(*filter.To) {
			continue
		}
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.CustomerID != nil && a.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *AppointmentRepo) waiting(id string) (appointment.Appointment, error) {
	a, ok := r.Rows[id]
	if !ok {
		return appointment.Appointment{}, appointment.ErrAppointmentNotFound
	}
	if a.Status != appointment.StatusWaiting {
		return appointment.Appointment{}, appointment.ErrAppointmentAlreadyClosed
	}
	return a, nil
}

func (r *AppointmentRepo) UpdateSchedule(ctx context.Context, id string, start, end time.Time, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.waiting(id)
	if err != nil {
		return err
	}
	a.StartTime, a.EndTime, a.Notes = start, end, notes
	r.Rows[id] = a
	return nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id string, status appointment.Status, totalPrice decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.waiting(id)
	if err != nil {
		return err
	}
	a.Status, a.TotalPrice = status, totalPrice
	r.Rows[id] = a
	return nil
}

func (r *AppointmentRepo) CountByStatus(ctx context.Context, status appointment.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.Rows {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

// ========== TRANSACTIONS ==========

type TransactionRepo struct {
	ids
	mu        sync.Mutex
	Rows      []transaction.Transaction
	CreateErr error
}

func NewTransactionRepo(seed ...transaction.Transaction) *TransactionRepo {
	return &TransactionRepo{Rows: append([]transaction.Transaction{}, seed...)}
}

func (r *TransactionRepo) Create(ctx context.Context, t transaction.Transaction) (transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return transaction.Transaction{}, r.CreateErr
	}
	t.ID = r.id("txn")
	t.CreatedAt = Now
	r.Rows = append(r.Rows, t)
	return t, nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.Rows {
		if t.ID == id {
			return t, nil
		}
	}
	return transaction.Transaction{}, transaction.ErrTransactionNotFound
}

func (r *TransactionRepo) List(ctx context.Context, filter transaction.TransactionFilter) ([]transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]transaction.Transaction, 0, len(r.Rows))
	for _, t := range r.Rows {
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.Date.After(*filter.To) {
			continue
		}
		if !filter.IncludeCanceled && t.Canceled {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *TransactionRepo) Cancel(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Rows {
		if r.Rows[i].ID != id {
			continue
		}
		if r.Rows[i].Canceled {
			return transaction.ErrTransactionAlreadyCanceled
		}
		r.Rows[i].Canceled = true
		return nil
	}
	return transaction.ErrTransactionNotFound
}

// ========== PAYROLL ==========

type SalaryRecordRepo struct {
	ids
	mu   sync.Mutex
	Rows []payroll.SalaryRecord
}

func NewSalaryRecordRepo(seed ...payroll.SalaryRecord) *SalaryRecordRepo {
	return &SalaryRecordRepo{Rows: append([]payroll.SalaryRecord{}, seed...)}
}

func (r *SalaryRecordRepo) Create(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = r.id("sal")
	record.CreatedAt = Now
	r.Rows = append(r.Rows, record)
	return record, nil
}

func (r *SalaryRecordRepo) GetByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.Rows {
		if s.ID == id {
			return s, nil
		}
	}
	return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
}

func (r *SalaryRecordRepo) sorted() []payroll.SalaryRecord {
	out := append([]payroll.SalaryRecord{}, r.Rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *SalaryRecordRepo) List(ctx context.Context, filter payroll.SalaryRecordFilter) ([]payroll.SalaryRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filter.Normalize()

	matched := make([]payroll.SalaryRecord, 0)
	for _, s := range r.sorted() {
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Type != nil && s.Type != *filter.Type {
			continue
		}
		if filter.Approved != nil && s.Approved != *filter.Approved {
			continue
		}
		matched = append(matched, s)
	}
	return page(matched, filter.Offset(), filter.Limit), int64(len(matched)), nil
}

func (r *SalaryRecordRepo) ListApproved(ctx context.Context) ([]payroll.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]payroll.SalaryRecord, 0)
	for _, s := range r.sorted() {
		if s.Approved {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SalaryRecordRepo) Approve(ctx context.Context, id, approvedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Rows {
		if r.Rows[i].ID != id {
			continue
		}
		if r.Rows[i].Approved {
			return payroll.ErrSalaryRecordAlreadyApproved
		}
		at := Now
		r.Rows[i].Approved = true
		r.Rows[i].ApprovedBy = &approvedBy
		r.Rows[i].ApprovedAt = &at
		return nil
	}
	return payroll.ErrSalaryRecordNotFound
}

type AdvanceRequestRepo struct {
	ids
	mu   sync.Mutex
	Rows []payroll.AdvanceRequest
	// Names resolves EmployeeName the way the SQL join does.
	Names map[string]string
}

func NewAdvanceRequestRepo(names map[string]string, seed ...payroll.AdvanceRequest) *AdvanceRequestRepo {
	return &AdvanceRequestRepo{Rows: append([]payroll.AdvanceRequest{}, seed...), Names: names}
}

func (r *AdvanceRequestRepo) withName(a payroll.AdvanceRequest) payroll.AdvanceRequest {
	a.EmployeeName = r.Names[a.EmployeeID]
	return a
}

func (r *AdvanceRequestRepo) Create(ctx context.Context, req payroll.AdvanceRequest) (payroll.AdvanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = r.id("adv")
	req.CreatedAt = Now
	if req.Status == "" {
		req.Status = payroll.AdvanceStatusPending
	}
	r.Rows = append(r.Rows, req)
	// the insert does not join employees, so no name comes back
	req.EmployeeName = ""
	return req, nil
}

func (r *AdvanceRequestRepo) GetByID(ctx context.Context, id string) (payroll.AdvanceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Rows {
		if a.ID == id {
			return r.withName(a), nil
		}
	}
	return payroll.AdvanceRequest{}, payroll.ErrAdvanceRequestNotFound
}

func (r *AdvanceRequestRepo) List(ctx context.Context, filter payroll.AdvanceRequestFilter) ([]payroll.AdvanceRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filter.Normalize()

	all := append([]payroll.AdvanceRequest{}, r.Rows...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	matched := make([]payroll.AdvanceRequest, 0)
	for _, a := range all {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		matched = append(matched, r.withName(a))
	}
	return page(matched, filter.Offset(), filter.Limit), int64(len(matched)), nil
}

func (r *AdvanceRequestRepo) UpdateStatus(ctx context.Context, id string, status payroll.AdvanceStatus, processedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Rows {
		if r.Rows[i].ID != id {
			continue
		}
		if r.Rows[i].Status != payroll.AdvanceStatusPending {
			return payroll.ErrAdvanceRequestAlreadyProcessed
		}
		at := Now
		r.Rows[i].Status = status
		r.Rows[i].ProcessedBy = &processedBy
		r.Rows[i].ProcessedAt = &at
		return nil
	}
	return payroll.ErrAdvanceRequestNotFound
}

func (r *AdvanceRequestRepo) CountByStatus(ctx context.Context, status payroll.AdvanceStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.Rows {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ========== REFRESH TOKENS ==========

type refreshToken struct {
	employeeID string
	expiresAt  time.Time
	revoked    bool
}

type RefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*refreshToken
}

func NewRefreshTokenRepo() *RefreshTokenRepo {
	return &RefreshTokenRepo{tokens: make(map[string]*refreshToken)}
}

var _ auth.RefreshTokenRepository = (*RefreshTokenRepo)(nil)

func (r *RefreshTokenRepo) CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &refreshToken{employeeID: employeeID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r *RefreshTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return "", true, nil
	}
	return t.employeeID, t.revoked || !t.expiresAt.After(time.Now()), nil
}

func (r *RefreshTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

func (r *RefreshTokenRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.tokens {
		if t.expiresAt.Before(cutoff) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored tokens.
func (r *RefreshTokenRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
