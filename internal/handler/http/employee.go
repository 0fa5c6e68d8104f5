package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/employee"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	// Staff management, owner only
	List(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	UpdateFinancials(w http.ResponseWriter, r *http.Request)

	// Own profile, any role
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		IncludeGuests: getBoolQueryParam(r, "include_guests", false),
	}
	if raw := getOptionalQueryParam(r, "role"); raw != nil {
		role, err := employee.ParseRole(*raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Role = &role
		filter.IncludeGuests = true
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.UpdateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated", result)
}

func (h *employeeHandlerImpl) UpdateFinancials(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateFinancialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.UpdateFinancials(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Financial details updated", result)
}

func (h *employeeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.UpdateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", result)
}

func (h *employeeHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req employee.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.employeeService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed", nil)
}
