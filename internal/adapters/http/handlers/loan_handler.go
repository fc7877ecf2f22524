package handlers

import (
	"errors"

	"harambee-sacco/internal/core/domain"
	"harambee-sacco/internal/core/services"
	"harambee-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// ApplyInput represents a loan application request
type ApplyInput struct {
	Amount   decimal.Decimal `json:"amount"`
	Duration int             `json:"duration"`
}

// Apply submits a loan application
// @Summary Apply for a loan
// @Description Submit a loan application (one active loan per member)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body ApplyInput true "Principal and duration in months"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/apply [post]
func (h *LoanHandler) Apply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input ApplyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Apply(c.Context(), userID, input.Amount, input.Duration)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidValues):
			return response.BadRequest(c, "Invalid values")
		case errors.Is(err, domain.ErrDuplicateActiveLoan):
			return response.UnprocessableEntity(c, "You already have an active loan. Please repay it before applying for a new one.")
		default:
			return response.InternalServerError(c, "Loan application failed")
		}
	}

	return response.Created(c, "Loan application submitted!", loan)
}

// MyLoans lists the member's loan history
// @Summary My loans
// @Description List the member's loans, newest application first
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) MyLoans(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	loans, err := h.loanService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}
	return response.Success(c, "Loans retrieved", loans)
}

// ListPending lists loans awaiting staff action
// @Summary Pending loans
// @Description List PENDING loan applications, newest first (staff only)
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /staff/loans/pending [get]
func (h *LoanHandler) ListPending(c *fiber.Ctx) error {
	loans, err := h.loanService.ListPending(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list pending loans")
	}
	return response.Success(c, "Pending loans retrieved", loans)
}

// Approve approves a pending loan
// @Summary Approve loan
// @Description Approve a PENDING loan (staff only)
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /staff/loans/{id}/approve [post]
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	loanID, err := c.ParamsInt("id")
	if err != nil || loanID < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Approve(c.Context(), uint(loanID))
	if err != nil {
		return writeLoanTransitionError(c, err)
	}
	return response.Success(c, "Loan approved", loan)
}

// RejectInput represents a loan rejection request
type RejectInput struct {
	Reason string `json:"reason"`
}

// Reject rejects a pending loan with a reason
// @Summary Reject loan
// @Description Reject a PENDING loan with a required reason (staff only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param input body RejectInput true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /staff/loans/{id}/reject [post]
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	loanID, err := c.ParamsInt("id")
	if err != nil || loanID < 1 {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input RejectInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Reject(c.Context(), uint(loanID), input.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrReasonRequired) {
			return response.BadRequest(c, "Rejection reason is required")
		}
		return writeLoanTransitionError(c, err)
	}
	return response.Success(c, "Loan rejected", loan)
}

func writeLoanTransitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		return response.NotFound(c, "Loan not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.UnprocessableEntity(c, "Loan is not pending approval")
	default:
		return response.InternalServerError(c, "Loan update failed")
	}
}
