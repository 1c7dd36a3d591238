package handlers

import (
	"net/http"

	"github.com/shulebase/shulebase/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// View returns the caller's role-gated dashboard
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	identity, scope, err := requestContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := h.dashboardService.View(r.Context(), scope, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
