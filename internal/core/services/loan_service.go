package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/adapters/persistence/repositories"
	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoanService handles the loan lifecycle: application, staff approval or
// rejection, and repayment allocation.
type LoanService struct {
	loanRepo   repositories.LoanRepository
	txnRepo    repositories.TransactionRepository
	locks      *memberLocks
	annualRate decimal.Decimal
	overpay    domain.OverpaymentPolicy
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	txnRepo repositories.TransactionRepository,
	locks *memberLocks,
	annualRate decimal.Decimal,
	overpay domain.OverpaymentPolicy,
) *LoanService {
	return &LoanService{
		loanRepo:   loanRepo,
		txnRepo:    txnRepo,
		locks:      locks,
		annualRate: annualRate,
		overpay:    overpay,
	}
}

// Apply records a loan application. The total due is fixed here, at first
// persistence, via simple interest; it is never recomputed afterwards.
// A member with a PENDING or APPROVED loan cannot apply again.
func (s *LoanService) Apply(ctx context.Context, userID uint, principal decimal.Decimal, durationMonths int) (*models.Loan, error) {
	if principal.Sign() <= 0 || durationMonths <= 0 {
		return nil, domain.ErrInvalidValues
	}

	active, err := s.loanRepo.HasActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.ErrDuplicateActiveLoan
	}

	totalDue := domain.TotalDue(principal, s.annualRate, durationMonths)
	loan := &models.Loan{
		UserID:         userID,
		Principal:      principal,
		InterestRate:   s.annualRate,
		DurationMonths: durationMonths,
		TotalDue:       totalDue,
		BalanceDue:     totalDue,
		Status:         string(domain.LoanPending),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Approve moves a PENDING loan to APPROVED and stamps the approval time.
// The total due is left untouched.
func (s *LoanService) Approve(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.getPending(ctx, loanID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	loan.Status = string(domain.LoanApproved)
	loan.ApprovedAt = &now

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Reject moves a PENDING loan to REJECTED with a required reason
func (s *LoanService) Reject(ctx context.Context, loanID uint, reason string) (*models.Loan, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	loan, err := s.getPending(ctx, loanID)
	if err != nil {
		return nil, err
	}

	loan.Status = string(domain.LoanRejected)
	loan.RejectionReason = &reason

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *LoanService) getPending(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	if loan.Status != string(domain.LoanPending) {
		return nil, domain.ErrInvalidTransition
	}
	return loan, nil
}

// Repay splits an incoming payment greedily across the member's APPROVED
// loans, oldest approval first. Each touched loan gets a repayment record;
// a loan whose balance reaches zero flips to PAID. One WITHDRAWAL ledger
// entry is appended for the payment; under the FORFEIT policy it covers the
// full amount even when the payment exceeds all outstanding debt, under
// CREDIT only the allocated total is withdrawn. Everything is persisted
// atomically.
func (s *LoanService) Repay(ctx context.Context, userID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	loans, err := s.loanRepo.ApprovedByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(loans) == 0 {
		return domain.ErrNoActiveLoan
	}

	debts := make([]domain.LoanDebt, len(loans))
	for i, loan := range loans {
		debts[i] = domain.LoanDebt{LoanID: loan.ID, BalanceDue: loan.BalanceDue}
	}

	repayments, remainder := domain.AllocatePayment(debts, amount)

	withdrawn := amount
	if s.overpay == domain.OverpayCredit {
		withdrawn = amount.Sub(remainder)
	} else if remainder.Sign() > 0 {
		log.Printf("⚠️ Repayment overpaid by %s (user %d), remainder forfeited per policy", remainder, userID)
	}

	var ledger *models.Transaction
	if withdrawn.Sign() > 0 {
		ledger = &models.Transaction{
			UserID:    userID,
			Amount:    withdrawn,
			Kind:      string(domain.KindWithdrawal),
			Reference: RefRepayment,
		}
	}

	return s.loanRepo.SettleRepayments(ctx, repayments, ledger)
}

// ListPending returns loans awaiting staff action, newest application first
func (s *LoanService) ListPending(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListPending(ctx)
}

// ListByUser returns a member's loan history, newest application first
func (s *LoanService) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByUser(ctx, userID)
}
