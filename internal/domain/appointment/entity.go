package appointment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var statusAliases = map[string]Status{
	"waiting":    StatusWaiting,
	"bekliyor":   StatusWaiting,
	"completed":  StatusCompleted,
	"tamamlandi": StatusCompleted,
	"tamamlandı": StatusCompleted,
	"canceled":   StatusCanceled,
	"cancelled":  StatusCanceled,
	"iptal":      StatusCanceled,
}

func ParseStatus(s string) (Status, error) {
	if st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

type Appointment struct {
	ID         string
	EmployeeID string
	CustomerID string
	ServiceIDs []string
	StartTime  time.Time
	EndTime    time.Time
	Status     Status
	Notes      string
	TotalPrice decimal.Decimal
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanTransitionTo allows waiting -> completed and waiting -> canceled only.
func (a Appointment) CanTransitionTo(next Status) error {
	if a.Status.IsTerminal() {
		return ErrAppointmentAlreadyClosed
	}
	if next != StatusCompleted && next != StatusCanceled {
		return ErrInvalidStatusTransition
	}
	return nil
}

// ComputeEndTime returns start plus the summed duration of services.
func ComputeEndTime(start time.Time, services []catalog.Service) time.Time {
	return start.Add(catalog.TotalDuration(services))
}

// EndTimeFor is ComputeEndTime for unvalidated input.
func EndTimeFor(start time.Time, services []catalog.Service) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, ErrStartTimeRequired
	}
	if len(services) == 0 {
		return time.Time{}, ErrNoServicesSelected
	}
	return ComputeEndTime(start, services), nil
}

// TodayAppointments returns the appointments starting on now's calendar date in loc,
// earliest first. It is recomputed from list on every call.
func TodayAppointments(list []Appointment, now time.Time, loc *time.Location) []Appointment {
	out := make([]Appointment, 0)
	for _, a := range list {
		if timeutil.SameDay(a.StartTime, now, loc) {
			out = append(out, a)
		}
	}
	sortByStart(out)
	return out
}

// WaitingAppointments returns every appointment still waiting, earliest first.
func WaitingAppointments(list []Appointment) []Appointment {
	out := make([]Appointment, 0)
	for _, a := range list {
		if a.Status == StatusWaiting {
			out = append(out, a)
		}
	}
	sortByStart(out)
	return out
}

func sortByStart(list []Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime.Before(list[j].StartTime)
	})
}
