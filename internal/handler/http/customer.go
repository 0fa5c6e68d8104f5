package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/customer"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type CustomerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type customerHandlerImpl struct {
	customerService customer.CustomerService
}

func NewCustomerHandler(customerService customer.CustomerService) CustomerHandler {
	return &customerHandlerImpl{customerService: customerService}
}

func (h *customerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.customerService.ListCustomers(r.Context(), customer.CustomerFilter{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *customerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req customer.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.customerService.CreateCustomer(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Customer created", result)
}

func (h *customerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customerService.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer deleted", nil)
}
