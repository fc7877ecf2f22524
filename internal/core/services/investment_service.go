package services

import (
	"context"
	"sync"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/adapters/persistence/repositories"
	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
)

// InvestmentService handles the system-wide capital pool: total share
// capital contributed by all members, minus what has already been placed in
// government bonds, bounds how much more may be invested.
type InvestmentService struct {
	txnRepo repositories.TransactionRepository

	// poolMu serializes invest operations system-wide; the pool check and
	// the bond append must not interleave.
	poolMu sync.Mutex
}

// NewInvestmentService creates a new investment service
func NewInvestmentService(txnRepo repositories.TransactionRepository) *InvestmentService {
	return &InvestmentService{txnRepo: txnRepo}
}

// Pool derives the current capital pool position
func (s *InvestmentService) Pool(ctx context.Context) (domain.CapitalPool, error) {
	sharePool, err := s.txnRepo.SumAllByKind(ctx, domain.KindShareTransfer)
	if err != nil {
		return domain.CapitalPool{}, err
	}
	bonds, err := s.txnRepo.SumAllByKind(ctx, domain.KindBondInvestment)
	if err != nil {
		return domain.CapitalPool{}, err
	}
	return domain.NewCapitalPool(sharePool, bonds), nil
}

// Invest places pooled share capital into bonds. The entry is recorded
// under the acting staff identity by convention.
func (s *InvestmentService) Invest(ctx context.Context, staffID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	s.poolMu.Lock()
	defer s.poolMu.Unlock()

	pool, err := s.Pool(ctx)
	if err != nil {
		return err
	}
	if amount.GreaterThan(pool.AvailableCapital) {
		return domain.ErrInsufficientPool
	}

	return s.txnRepo.Create(ctx, &models.Transaction{
		UserID:    staffID,
		Amount:    amount,
		Kind:      string(domain.KindBondInvestment),
		Reference: RefBond,
	})
}
