package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/salonpanel/salon-backend-go/internal/domain/auth"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
	"github.com/salonpanel/salon-backend-go/internal/pkg/jwt"
	"github.com/salonpanel/salon-backend-go/internal/pkg/sse"
)

type EventsHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
	keepalive  time.Duration
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service) EventsHandler {
	return &eventsHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
		keepalive:  30 * time.Second,
	}
}

// GetSSEToken issues the short-lived token EventSource passes as a query parameter.
func (h *eventsHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(session.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn})
}

func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.SessionExpired(w)
		return
	}

	employeeID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.SessionExpired(w)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("failed to encode event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
