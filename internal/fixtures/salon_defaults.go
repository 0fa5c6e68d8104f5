package fixtures

import (
	"context"
	"fmt"

	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds the ids of everything Seed created, keyed by a stable name.
type SeededDataIDs struct {
	// Employee IDs by email
	EmployeeIDs map[string]string

	// Service IDs by title
	ServiceIDs map[string]string

	// Customer IDs by phone
	CustomerIDs map[string]string
}

func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		EmployeeIDs: make(map[string]string),
		ServiceIDs:  make(map[string]string),
		CustomerIDs: make(map[string]string),
	}
}

// OwnerID returns the id of the seeded patron.
func (s *SeededDataIDs) OwnerID() string {
	return s.EmployeeIDs[OwnerEmail]
}

// StylistID returns the id of the seeded calisan.
func (s *SeededDataIDs) StylistID() string {
	return s.EmployeeIDs[StylistEmail]
}

// ==========================================
// DEFAULT STAFF
// ==========================================

const (
	OwnerEmail   = "patron@salon.test"
	StylistEmail = "ayse@salon.test"
	GuestEmail   = "misafir@salon.test"
)

// GetDefaultStaff returns one employee per role, all sharing passwordHash.
func GetDefaultStaff(passwordHash string) []employee.Employee {
	return []employee.Employee{
		{
			Name:         "Salon Sahibi",
			Email:        OwnerEmail,
			Phone:        "05320000001",
			PasswordHash: passwordHash,
			Role:         employee.RolePatron,
		},
		{
			Name:           "Ayşe Yılmaz",
			Email:          StylistEmail,
			Phone:          "05320000002",
			PasswordHash:   passwordHash,
			Role:           employee.RoleCalisan,
			Salary:         decimal.NewFromInt(25000),
			CommissionRate: decimal.NewFromInt(10),
		},
		{
			Name:         "Yeni Kayıt",
			Email:        GuestEmail,
			Phone:        "05320000003",
			PasswordHash: passwordHash,
			Role:         employee.RoleMisafir,
		},
	}
}

// ==========================================
// DEFAULT SERVICE MENU
// ==========================================

func GetDefaultServices() []catalog.Service {
	return []catalog.Service{
		{Title: "Saç Kesimi", DurationMinutes: 30, Price: decimal.NewFromInt(250)},
		{Title: "Sakal Tıraşı", DurationMinutes: 15, Price: decimal.NewFromInt(100)},
		{Title: "Fön", DurationMinutes: 20, Price: decimal.NewFromInt(150)},
		{Title: "Saç Boyama", DurationMinutes: 90, Price: decimal.NewFromInt(900)},
	}
}

// ==========================================
// DEFAULT CUSTOMERS
// ==========================================

func GetDefaultCustomers() []customer.Customer {
	return []customer.Customer{
		{Name: "İpek Demir", Phone: "05551112233", Notes: "Kısa kesim sever"},
		{Name: "Irmak Kaya", Phone: "05554445566"},
	}
}

// Seed inserts the default staff, service menu and customers.
func Seed(
	ctx context.Context,
	employeeRepo employee.EmployeeRepository,
	serviceRepo catalog.ServiceRepository,
	customerRepo customer.CustomerRepository,
	passwordHash string,
) (*SeededDataIDs, error) {
	ids := NewSeededDataIDs()

	for _, emp := range GetDefaultStaff(passwordHash) {
		created, err := employeeRepo.Create(ctx, emp)
		if err != nil {
			return nil, fmt.Errorf("failed to seed employee %s: %w", emp.Email, err)
		}
		ids.EmployeeIDs[emp.Email] = created.ID
	}

	for _, svc := range GetDefaultServices() {
		created, err := serviceRepo.Create(ctx, svc)
		if err != nil {
			return nil, fmt.Errorf("failed to seed service %s: %w", svc.Title, err)
		}
		ids.ServiceIDs[svc.Title] = created.ID
	}

	for _, c := range GetDefaultCustomers() {
		created, err := customerRepo.Create(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to seed customer %s: %w", c.Name, err)
		}
		ids.CustomerIDs[c.Phone] = created.ID
	}

	return ids, nil
}
