package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RolePatron  Role = "patron"
	RoleCalisan Role = "calisan"
	RoleMisafir Role = "misafir"
)

var roleAliases = map[string]Role{
	"patron":  RolePatron,
	"owner":   RolePatron,
	"calisan": RoleCalisan,
	"çalışan": RoleCalisan,
	"staff":   RoleCalisan,
	"misafir": RoleMisafir,
	"guest":   RoleMisafir,
}

// ParseRole accepts the stored spelling and the legacy aliases, case-insensitively.
func ParseRole(s string) (Role, error) {
	if r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Bookable reports whether appointments may be assigned to this role.
func (r Role) Bookable() bool {
	return r == RolePatron || r == RoleCalisan
}

type Employee struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	PasswordHash   string
	Role           Role
	Salary         decimal.Decimal
	CommissionRate decimal.Decimal
	AdvanceBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Financials struct {
	Salary         decimal.Decimal
	CommissionRate decimal.Decimal
	AdvanceBalance decimal.Decimal
}

// NameIndex maps employee ids to display names.
func NameIndex(employees []Employee) map[string]string {
	idx := make(map[string]string, len(employees))
	for _, e := range employees {
		idx[e.ID] = e.Name
	}
	return idx
}
