package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	SubscriberID string
	Event        string
	Data         interface{}
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new stream for an employee and returns the event channel and cleanup function.
// One employee may hold several streams (one per open dashboard tab).
func (h *Hub) Subscribe(employeeID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Event]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[employeeID], ch)
			close(ch)
			if len(h.subscribers[employeeID]) == 0 {
				delete(h.subscribers, employeeID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all streams of a specific employee
func (h *Hub) Publish(employeeID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.SubscriberID = employeeID
	for ch := range h.subscribers[employeeID] {
		select {
		case ch <- event:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}

// Broadcast sends an event to every open stream. Returns the number of streams reached.
func (h *Hub) Broadcast(event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for employeeID, subs := range h.subscribers {
		eventCopy := event
		eventCopy.SubscriberID = employeeID
		for ch := range subs {
			select {
			case ch <- eventCopy:
				delivered++
			default:
			}
		}
	}
	return delivered
}

// SubscriberCount returns the number of active streams for an employee
func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[employeeID])
}

// TotalSubscribers returns the total number of active streams across all employees
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
