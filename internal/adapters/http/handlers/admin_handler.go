package handlers

import (
	"errors"

	"harambee-sacco/internal/core/domain"
	"harambee-sacco/internal/core/services"
	"harambee-sacco/internal/pkg/pagination"
	"harambee-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AdminHandler handles staff-only operations: bond investment, fines and
// member administration.
type AdminHandler struct {
	investmentService *services.InvestmentService
	ledgerService     *services.LedgerService
	userService       *services.UserService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	investmentService *services.InvestmentService,
	ledgerService *services.LedgerService,
	userService *services.UserService,
) *AdminHandler {
	return &AdminHandler{
		investmentService: investmentService,
		ledgerService:     ledgerService,
		userService:       userService,
	}
}

// AmountInput carries a single monetary amount
type AmountInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// Invest places pooled share capital into government bonds
// @Summary Invest in bonds
// @Description Invest available share capital in bonds (staff only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body AmountInput true "Amount to invest"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/invest [post]
func (h *AdminHandler) Invest(c *fiber.Ctx) error {
	staffID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input AmountInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.investmentService.Invest(c.Context(), staffID, input.Amount); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Invalid amount")
		case errors.Is(err, domain.ErrInsufficientPool):
			return response.UnprocessableEntity(c, "Insufficient Share Capital Pool")
		default:
			return response.InternalServerError(c, "Investment failed")
		}
	}
	return response.Success(c, "Investment successful!", nil)
}

// GetPool returns the capital pool position
// @Summary Capital pool
// @Description Derived capital pool position (staff only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/pool [get]
func (h *AdminHandler) GetPool(c *fiber.Ctx) error {
	pool, err := h.investmentService.Pool(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to derive capital pool")
	}
	return response.Success(c, "Capital pool retrieved", pool)
}

// RecordFine records a late-payment fine against a member
// @Summary Record fine
// @Description Append a FINE ledger entry for a member (staff only)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param input body AmountInput true "Fine amount"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/members/{id}/fines [post]
func (h *AdminHandler) RecordFine(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil || memberID < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var input AmountInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if _, err := h.userService.GetByID(c.Context(), uint(memberID)); err != nil {
		return response.NotFound(c, "Member not found")
	}

	if err := h.ledgerService.RecordFine(c.Context(), uint(memberID), input.Amount); err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return response.BadRequest(c, "Invalid amount")
		}
		return response.InternalServerError(c, "Failed to record fine")
	}
	return response.Success(c, "Fine recorded", nil)
}

// ListMembers lists member accounts
// @Summary List members
// @Description List member accounts, newest first (staff only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/members [get]
func (h *AdminHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.userService.ListMembers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}
	return response.Success(c, "Members retrieved", pagination.NewResponse(members, params, total))
}

// DeleteMember removes a member account and their history
// @Summary Delete member
// @Description Delete a non-staff member and cascade their records (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id} [delete]
func (h *AdminHandler) DeleteMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil || memberID < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.userService.DeleteMember(c.Context(), uint(memberID)); err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Forbidden(c, "Staff accounts cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete member")
		}
	}
	return response.Success(c, "Member deleted", nil)
}
