package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/catalog"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type CatalogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdatePrice(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	catalogService catalog.CatalogService
}

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandlerImpl{catalogService: catalogService}
}

func (h *catalogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.ListServices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *catalogHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.catalogService.CreateService(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Service created", result)
}

func (h *catalogHandlerImpl) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req catalog.UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.catalogService.UpdatePrice(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Price updated", result)
}

func (h *catalogHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteService(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Service deleted", nil)
}
