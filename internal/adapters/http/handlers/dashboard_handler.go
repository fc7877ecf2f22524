package handlers

import (
	"harambee-sacco/internal/core/services"
	"harambee-sacco/internal/pkg/pagination"
	"harambee-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMemberDashboard returns the member's dashboard snapshot
// @Summary Member dashboard
// @Description Derived balances, loan position and a page of recent transactions
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param page query int false "Transaction page number"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetMemberDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	// Transaction list is pinned to five entries per page
	params := pagination.GetPage(c, pagination.DashboardLimit)

	data, err := h.dashboardService.GetMemberDashboard(c.Context(), userID, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard")
	}
	return response.Success(c, "Dashboard retrieved", data)
}

// GetAdminDashboard returns the system-wide overview
// @Summary Admin dashboard
// @Description Capital pool position and per-member summaries (staff only)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get admin dashboard")
	}
	return response.Success(c, "Admin dashboard retrieved", data)
}
