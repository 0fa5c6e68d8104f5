package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SalaryType string

const (
	SalaryTypeSalary  SalaryType = "salary"
	SalaryTypeBonus   SalaryType = "bonus"
	SalaryTypeAdvance SalaryType = "advance"
)

var salaryTypeAliases = map[string]SalaryType{
	"salary":  SalaryTypeSalary,
	"maas":    SalaryTypeSalary,
	"maaş":    SalaryTypeSalary,
	"bonus":   SalaryTypeBonus,
	"prim":    SalaryTypeBonus,
	"advance": SalaryTypeAdvance,
	"avans":   SalaryTypeAdvance,
}

func ParseSalaryType(s string) (SalaryType, error) {
	if t, ok := salaryTypeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSalaryType, s)
}

// Is compares types case-insensitively, accepting legacy spellings on either side.
func (t SalaryType) Is(other SalaryType) bool {
	a, err := ParseSalaryType(string(t))
	if err != nil {
		return false
	}
	b, err := ParseSalaryType(string(other))
	return err == nil && a == b
}

type SalaryRecord struct {
	ID          string
	EmployeeID  string
	Type        SalaryType
	Amount      decimal.Decimal
	Description string
	Approved    bool
	Date        time.Time
	ApprovedBy  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
}

type AdvanceStatus string

const (
	AdvanceStatusPending  AdvanceStatus = "pending"
	AdvanceStatusApproved AdvanceStatus = "approved"
	AdvanceStatusRejected AdvanceStatus = "rejected"
)

var advanceStatusAliases = map[string]AdvanceStatus{
	"pending":    AdvanceStatusPending,
	"beklemede":  AdvanceStatusPending,
	"approved":   AdvanceStatusApproved,
	"onaylandi":  AdvanceStatusApproved,
	"onaylandı":  AdvanceStatusApproved,
	"rejected":   AdvanceStatusRejected,
	"reddedildi": AdvanceStatusRejected,
}

func ParseAdvanceStatus(s string) (AdvanceStatus, error) {
	if st, ok := advanceStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAdvanceStatus, s)
}

type AdvanceRequest struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Amount       decimal.Decimal
	Reason       string
	Status       AdvanceStatus
	ProcessedBy  *string
	ProcessedAt  *time.Time
	CreatedAt    time.Time
}

// Decide checks that the request is still pending and next is a terminal decision.
func (r AdvanceRequest) Decide(next AdvanceStatus) error {
	if r.Status != AdvanceStatusPending {
		return ErrAdvanceRequestAlreadyProcessed
	}
	if next != AdvanceStatusApproved && next != AdvanceStatusRejected {
		return ErrInvalidAdvanceStatus
	}
	return nil
}

// AdvanceRecordFor is the approved salary record written when an advance request is approved.
func AdvanceRecordFor(r AdvanceRequest, approvedBy string, at time.Time) SalaryRecord {
	description := "Advance request"
	if strings.TrimSpace(r.Reason) != "" {
		description = "Advance request: " + strings.TrimSpace(r.Reason)
	}
	return SalaryRecord{
		EmployeeID:  r.EmployeeID,
		Type:        SalaryTypeAdvance,
		Amount:      r.Amount,
		Description: description,
		Approved:    true,
		Date:        at,
		ApprovedBy:  &approvedBy,
		ApprovedAt:  &at,
	}
}
