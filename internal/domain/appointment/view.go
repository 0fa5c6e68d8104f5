package appointment

import (
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/domain/shared"
	"github.com/salonpanel/salon-backend-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

type ServiceLine struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Missing         bool            `json:"missing,omitempty"`
}

// AppointmentView is an appointment joined with the names the calendar shows.
type AppointmentView struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	ServiceIDs    []string        `json:"service_ids"`
	Services      []ServiceLine   `json:"services"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	StartMillis   int64           `json:"start_millis"`
	EndMillis     int64           `json:"end_millis"`
	StartLabel    string          `json:"start_label"`
	EndLabel      string          `json:"end_label"`
	DurationLabel string          `json:"duration_label"`
	Status        Status          `json:"status"`
	Notes         string          `json:"notes"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// Lookups holds the reference data a view is joined against.
type Lookups struct {
	Employees map[string]string
	Customers map[string]string
	Services  map[string]catalog.Service
}

func lookupName(idx map[string]string, id string) string {
	if name, ok := idx[id]; ok && name != "" {
		return name
	}
	return shared.UnknownName
}

func BuildView(a Appointment, l Lookups, loc *time.Location) AppointmentView {
	lines := make([]ServiceLine, 0, len(a.ServiceIDs))
	for _, id := range a.ServiceIDs {
		s, ok := l.Services[id]
		if !ok {
			lines = append(lines, ServiceLine{ID: id, Title: shared.UnknownName, Price: decimal.Zero, Missing: true})
			continue
		}
		lines = append(lines, ServiceLine{ID: s.ID, Title: s.Title, DurationMinutes: s.DurationMinutes, Price: s.Price})
	}

	serviceIDs := a.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []string{}
	}

	return AppointmentView{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  lookupName(l.Employees, a.EmployeeID),
		CustomerID:    a.CustomerID,
		CustomerName:  lookupName(l.Customers, a.CustomerID),
		ServiceIDs:    serviceIDs,
		Services:      lines,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		StartMillis:   timeutil.ToEpochMillis(a.StartTime),
		EndMillis:     timeutil.ToEpochMillis(a.EndTime),
		StartLabel:    timeutil.FormatTimeOfDay(a.StartTime, loc),
		EndLabel:      timeutil.FormatTimeOfDay(a.EndTime, loc),
		DurationLabel: timeutil.FormatDuration(a.StartTime, a.EndTime, loc),
		Status:        a.Status,
		Notes:         a.Notes,
		TotalPrice:    a.TotalPrice,
	}
}

func BuildViews(list []Appointment, l Lookups, loc *time.Location) []AppointmentView {
	views := make([]AppointmentView, 0, len(list))
	for _, a := range list {
		views = append(views, BuildView(a, l, loc))
	}
	return views
}
