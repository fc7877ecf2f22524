package handlers

import (
	"errors"

	"harambee-sacco/internal/core/domain"
	"harambee-sacco/internal/core/services"
	"harambee-sacco/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Action is the closed set of member-facing ledger operations
type Action string

const (
	ActionDeposit       Action = "DEPOSIT"
	ActionWithdraw      Action = "WITHDRAW"
	ActionShareTransfer Action = "SHARE_TRANSFER"
	ActionRepay         Action = "REPAY"
)

// LedgerHandler handles member cash movement endpoints
type LedgerHandler struct {
	ledgerService *services.LedgerService
	loanService   *services.LoanService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *services.LedgerService, loanService *services.LoanService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		loanService:   loanService,
	}
}

// TransactInput represents a member transaction request
type TransactInput struct {
	Action Action          `json:"action"`
	Amount decimal.Decimal `json:"amount"`
}

// Transact executes a member cash operation
// @Summary Transact
// @Description Deposit, withdraw, buy shares, or repay a loan
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body TransactInput true "Action and amount"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /ledger/transact [post]
func (h *LedgerHandler) Transact(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input TransactInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var err error
	var message string

	switch input.Action {
	case ActionDeposit:
		err = h.ledgerService.Deposit(c.Context(), userID, input.Amount)
		message = "Top-up successful!"
	case ActionWithdraw:
		err = h.ledgerService.Withdraw(c.Context(), userID, input.Amount)
		message = "Withdrawal successful!"
	case ActionShareTransfer:
		err = h.ledgerService.TransferToShares(c.Context(), userID, input.Amount)
		message = "Shares bought successfully!"
	case ActionRepay:
		err = h.loanService.Repay(c.Context(), userID, input.Amount)
		message = "Repayment successful!"
	default:
		return response.BadRequest(c, "Unknown action")
	}

	if err != nil {
		return writeLedgerError(c, err)
	}
	return response.Success(c, message, nil)
}

// GetBalance returns the member's derived position
// @Summary Balance
// @Description Get savings, share capital and projected dividends
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /ledger/balance [get]
func (h *LedgerHandler) GetBalance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	balance, err := h.ledgerService.BalanceFor(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to derive balance")
	}
	return response.Success(c, "Balance retrieved", balance)
}

// writeLedgerError maps domain errors to the response envelope
func writeLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return response.BadRequest(c, "Invalid amount")
	case errors.Is(err, domain.ErrInsufficientFunds):
		return response.UnprocessableEntity(c, "Insufficient funds in Current Account")
	case errors.Is(err, domain.ErrNoActiveLoan):
		return response.UnprocessableEntity(c, "No active loans to repay")
	default:
		return response.InternalServerError(c, "Transaction failed")
	}
}
