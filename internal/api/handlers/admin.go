package handlers

import (
	"net/http"

	"github.com/ndewijer/RemitWise-Backend/internal/api/response"
	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
	"github.com/ndewijer/RemitWise-Backend/internal/service"
)

// AdminHandler handles HTTP requests for the admin dashboard.
// The admin surface is unauthenticated.
type AdminHandler struct {
	adminService *service.AdminService
	clickService *service.ClickService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService, clickService *service.ClickService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		clickService: clickService,
	}
}

// Stats handles GET requests for aggregated click statistics.
//
// Endpoint: GET /api/admin/stats
// Response: 200 OK with ClickStats
// Error: 500 Internal Server Error if retrieval fails
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.clickService.GetStats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// Dashboard handles GET requests for the admin dashboard.
//
// Endpoint: GET /api/admin/dashboard
// Response: 200 OK with Dashboard
// Error: 500 Internal Server Error if retrieval fails
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.adminService.Dashboard(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}
