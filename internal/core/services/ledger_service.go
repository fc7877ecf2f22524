package services

import (
	"context"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/adapters/persistence/repositories"
	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Ledger entry references, mirroring what the mobile money flows stamp
const (
	RefDeposit   = "MPESA-TOPUP"
	RefWithdraw  = "MPESA-WITHDRAW"
	RefShares    = "TO SHARES"
	RefRepayment = "LOAN REPAYMENT"
	RefBond      = "GOVT-BOND-PURCHASE"
	RefFine      = "LATE-PAYMENT-FINE"
)

// LedgerService handles member cash movements and balance derivation.
// Balances are never stored: every read sums the full transaction history,
// which stays trivially correct under append-only writes.
type LedgerService struct {
	txnRepo repositories.TransactionRepository
	locks   *memberLocks
}

// NewLedgerService creates a new ledger service
func NewLedgerService(txnRepo repositories.TransactionRepository, locks *memberLocks) *LedgerService {
	return &LedgerService{txnRepo: txnRepo, locks: locks}
}

// Deposit appends a DEPOSIT entry unconditionally
func (s *LedgerService) Deposit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	return s.txnRepo.Create(ctx, &models.Transaction{
		UserID:    userID,
		Amount:    amount,
		Kind:      string(domain.KindDeposit),
		Reference: RefDeposit,
	})
}

// Withdraw appends a WITHDRAWAL entry if the member's current account covers
// it. The check and the append run under the member's lock.
func (s *LedgerService) Withdraw(ctx context.Context, userID uint, amount decimal.Decimal) error {
	return s.drawFromCurrentAccount(ctx, userID, amount, domain.KindWithdrawal, RefWithdraw)
}

// TransferToShares moves cash out of the current account into share capital.
// Share transfers draw from the same pool as withdrawals.
func (s *LedgerService) TransferToShares(ctx context.Context, userID uint, amount decimal.Decimal) error {
	return s.drawFromCurrentAccount(ctx, userID, amount, domain.KindShareTransfer, RefShares)
}

func (s *LedgerService) drawFromCurrentAccount(ctx context.Context, userID uint, amount decimal.Decimal, kind domain.TransactionKind, reference string) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	lock := s.locks.For(userID)
	lock.Lock()
	defer lock.Unlock()

	available, err := s.Available(ctx, userID)
	if err != nil {
		return err
	}
	if available.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}

	return s.txnRepo.Create(ctx, &models.Transaction{
		UserID:    userID,
		Amount:    amount,
		Kind:      string(kind),
		Reference: reference,
	})
}

// RecordFine appends a FINE entry against a member. Staff only; fines are
// recorded on the ledger but do not enter the savings derivation.
func (s *LedgerService) RecordFine(ctx context.Context, userID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	return s.txnRepo.Create(ctx, &models.Transaction{
		UserID:    userID,
		Amount:    amount,
		Kind:      string(domain.KindFine),
		Reference: RefFine,
	})
}

// Available derives the member's withdrawable cash:
// Σ deposits − Σ (withdrawals ∪ share transfers)
func (s *LedgerService) Available(ctx context.Context, userID uint) (decimal.Decimal, error) {
	deposits, err := s.txnRepo.SumByKinds(ctx, userID, domain.KindDeposit)
	if err != nil {
		return decimal.Zero, err
	}
	drawn, err := s.txnRepo.SumByKinds(ctx, userID, domain.KindWithdrawal, domain.KindShareTransfer)
	if err != nil {
		return decimal.Zero, err
	}
	return deposits.Sub(drawn), nil
}

// BalanceFor derives a member's full position from the ledger
func (s *LedgerService) BalanceFor(ctx context.Context, userID uint) (domain.Balance, error) {
	savings, err := s.Available(ctx, userID)
	if err != nil {
		return domain.Balance{}, err
	}

	shareCapital, err := s.txnRepo.SumByKinds(ctx, userID, domain.KindShareTransfer)
	if err != nil {
		return domain.Balance{}, err
	}

	return domain.Balance{
		Savings:            savings,
		ShareCapital:       shareCapital,
		ProjectedDividends: shareCapital.Mul(domain.DividendRate).Round(2),
	}, nil
}

// Statement returns one page of a member's ledger, newest first
func (s *LedgerService) Statement(ctx context.Context, userID uint, offset, limit int) ([]domain.TransactionView, int64, error) {
	txns, total, err := s.txnRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]domain.TransactionView, len(txns))
	for i, txn := range txns {
		views[i] = txn.ToView()
	}
	return views, total, nil
}
