package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/appointment"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type AppointmentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type appointmentHandlerImpl struct {
	appointmentService appointment.AppointmentService
	loc                *time.Location
}

func NewAppointmentHandler(appointmentService appointment.AppointmentService, loc *time.Location) AppointmentHandler {
	return &appointmentHandlerImpl{appointmentService: appointmentService, loc: loc}
}

func (h *appointmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := timeRangeParams(r, h.loc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := appointment.AppointmentFilter{
		From:       from,
		To:         to,
		EmployeeID: getOptionalQueryParam(r, "employee_id"),
		CustomerID: getOptionalQueryParam(r, "customer_id"),
	}
	if raw := getOptionalQueryParam(r, "status"); raw != nil {
		status, err := appointment.ParseStatus(*raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Status = &status
	}

	result, err := h.appointmentService.ListAppointments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *appointmentHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.appointmentService.Overview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *appointmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.appointmentService.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *appointmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req appointment.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.appointmentService.CreateAppointment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Appointment created", result)
}

func (h *appointmentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req appointment.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.appointmentService.UpdateAppointment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appointment updated", result)
}

func (h *appointmentHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req appointment.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.appointmentService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appointment status updated", result)
}
