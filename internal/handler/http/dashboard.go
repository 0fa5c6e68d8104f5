package http

import (
	"net/http"

	"github.com/salonpanel/salon-backend-go/internal/domain/dashboard"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
