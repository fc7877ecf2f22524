package domain

import "errors"

// Ledger errors
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds in current account")
	ErrInsufficientPool  = errors.New("insufficient share capital pool")
)

// Loan errors
var (
	ErrInvalidValues       = errors.New("invalid principal or duration")
	ErrDuplicateActiveLoan = errors.New("an active loan already exists")
	ErrNoActiveLoan        = errors.New("no active loans to repay")
	ErrInvalidTransition   = errors.New("loan is not pending approval")
	ErrReasonRequired      = errors.New("rejection reason is required")
	ErrLoanNotFound        = errors.New("loan not found")
)

// Access errors
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrMemberNotFound = errors.New("member not found")
)
