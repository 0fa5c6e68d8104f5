package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/payroll"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Salary records
	ListSalaryRecords(w http.ResponseWriter, r *http.Request)
	CreateSalaryRecord(w http.ResponseWriter, r *http.Request)
	ApproveSalaryRecord(w http.ResponseWriter, r *http.Request)

	// Advance requests
	ListAdvanceRequests(w http.ResponseWriter, r *http.Request)
	PendingAdvanceCount(w http.ResponseWriter, r *http.Request)
	CreateMyAdvanceRequest(w http.ResponseWriter, r *http.Request)
	ApproveAdvanceRequest(w http.ResponseWriter, r *http.Request)
	RejectAdvanceRequest(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== SALARY RECORDS ==========

func (h *payrollHandlerImpl) ListSalaryRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.SalaryRecordFilter{
		EmployeeID: getOptionalQueryParam(r, "employee_id"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
	if raw := getOptionalQueryParam(r, "type"); raw != nil {
		salaryType, err := payroll.ParseSalaryType(*raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Type = &salaryType
	}
	if raw := getOptionalQueryParam(r, "approved"); raw != nil {
		approved, err := strconv.ParseBool(*raw)
		if err != nil {
			response.BadRequest(w, "approved must be true or false", nil)
			return
		}
		filter.Approved = &approved
	}

	result, err := h.payrollService.ListSalaryRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.PageMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) CreateSalaryRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateSalaryRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary record created", result)
}

func (h *payrollHandlerImpl) ApproveSalaryRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ApproveSalaryRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record approved", result)
}

// ========== ADVANCE REQUESTS ==========

func (h *payrollHandlerImpl) ListAdvanceRequests(w http.ResponseWriter, r *http.Request) {
	filter := payroll.AdvanceRequestFilter{
		EmployeeID: getOptionalQueryParam(r, "employee_id"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
	if raw := getOptionalQueryParam(r, "status"); raw != nil {
		status, err := payroll.ParseAdvanceStatus(*raw)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.Status = &status
	}

	result, err := h.payrollService.ListAdvanceRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.PageMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) PendingAdvanceCount(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.PendingAdvanceCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreateMyAdvanceRequest(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateAdvanceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateMyAdvanceRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance request submitted", result)
}

func (h *payrollHandlerImpl) ApproveAdvanceRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ApproveAdvanceRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance request approved", result)
}

func (h *payrollHandlerImpl) RejectAdvanceRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.RejectAdvanceRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance request rejected", result)
}
