package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/pkg/sse"
)

// Topic names a collection whose cached views a client must refetch.
type Topic string

const (
	TopicAppointments    Topic = "appointments.changed"
	TopicTransactions    Topic = "transactions.changed"
	TopicAdvanceRequests Topic = "advance_requests.changed"
	TopicSalaryRecords   Topic = "salary_records.changed"
	TopicCustomers       Topic = "customers.changed"
	TopicServices        Topic = "services.changed"
	TopicEmployees       Topic = "employees.changed"
)

// Publisher announces that a collection changed. Publishing never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, topics ...Topic)
}

// Payload is the data of a change event. Counts are only set for topics with a badge.
type Payload struct {
	Topic        Topic  `json:"topic"`
	At           int64  `json:"at"`
	WaitingCount *int64 `json:"waiting_count,omitempty"`
	PendingCount *int64 `json:"pending_count,omitempty"`
}

type appointmentCounter interface {
	CountByStatus(ctx context.Context, status appointment.Status) (int64, error)
}

type advanceCounter interface {
	CountByStatus(ctx context.Context, status payroll.AdvanceStatus) (int64, error)
}

type HubPublisher struct {
	hub          *sse.Hub
	appointments appointmentCounter
	advances     advanceCounter
	now          func() time.Time
}

func NewHubPublisher(hub *sse.Hub, appointments appointmentCounter, advances advanceCounter) *HubPublisher {
	return &HubPublisher{
		hub:          hub,
		appointments: appointments,
		advances:     advances,
		now:          time.Now,
	}
}

// Publish implements Publisher.
func (p *HubPublisher) Publish(ctx context.Context, topics ...Topic) {
	if p.hub.TotalSubscribers() == 0 {
		return
	}
	for _, topic := range topics {
		payload := Payload{Topic: topic, At: p.now().UnixMilli()}

		switch topic {
		case TopicAppointments:
			count, err := p.appointments.CountByStatus(ctx, appointment.StatusWaiting)
			if err != nil {
				slog.Warn("Failed to count waiting appointments for event", "error", err)
			} else {
				payload.WaitingCount = &count
			}
		case TopicAdvanceRequests:
			count, err := p.advances.CountByStatus(ctx, payroll.AdvanceStatusPending)
			if err != nil {
				slog.Warn("Failed to count pending advance requests for event", "error", err)
			} else {
				payload.PendingCount = &count
			}
		}

		delivered := p.hub.Broadcast(sse.Event{Event: string(topic), Data: payload})
		slog.Debug("Change event published", "topic", topic, "streams", delivered)
	}
}

// Nop discards events; used where no stream hub is wired.
type Nop struct{}

func (Nop) Publish(ctx context.Context, topics ...Topic) {}
