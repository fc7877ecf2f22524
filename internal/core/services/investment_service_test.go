package services

import (
	"context"
	"testing"

	"harambee-sacco/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedShares(t *testing.T, ledger *LedgerService, userID uint, amount string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, ledger.Deposit(ctx, userID, dec(amount)))
	require.NoError(t, ledger.TransferToShares(ctx, userID, dec(amount)))
}

func TestInvestWithinPool(t *testing.T) {
	ctx := context.Background()
	txnRepo := newFakeTxnRepo()
	ledger := NewLedgerService(txnRepo, NewMemberLocks())
	svc := NewInvestmentService(txnRepo)

	seedShares(t, ledger, 1, "6000")
	seedShares(t, ledger, 2, "4000")

	require.NoError(t, svc.Invest(ctx, 99, dec("7000")))

	pool, err := svc.Pool(ctx)
	require.NoError(t, err)
	assert.True(t, pool.SharePool.Equal(dec("10000")))
	assert.True(t, pool.BondsBalance.Equal(dec("7000")))
	assert.True(t, pool.AvailableCapital.Equal(dec("3000")))
	assert.True(t, pool.ProjectedReturns.Equal(dec("1050")), "returns = %s", pool.ProjectedReturns)
}

func TestInvestExceedingPool(t *testing.T) {
	ctx := context.Background()
	txnRepo := newFakeTxnRepo()
	ledger := NewLedgerService(txnRepo, NewMemberLocks())
	svc := NewInvestmentService(txnRepo)

	seedShares(t, ledger, 1, "5000")

	// Exactly the pool succeeds; a cent more fails
	require.NoError(t, svc.Invest(ctx, 99, dec("5000")))
	assert.ErrorIs(t, svc.Invest(ctx, 99, dec("0.01")), domain.ErrInsufficientPool)
}

func TestInvestWithEmptyPool(t *testing.T) {
	ctx := context.Background()
	svc := NewInvestmentService(newFakeTxnRepo())

	assert.ErrorIs(t, svc.Invest(ctx, 99, dec("100")), domain.ErrInsufficientPool)
}

func TestInvestRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	svc := NewInvestmentService(newFakeTxnRepo())

	assert.ErrorIs(t, svc.Invest(ctx, 99, dec("0")), domain.ErrInvalidAmount)
}

func TestInvestmentRecordedUnderStaffIdentity(t *testing.T) {
	ctx := context.Background()
	txnRepo := newFakeTxnRepo()
	ledger := NewLedgerService(txnRepo, NewMemberLocks())
	svc := NewInvestmentService(txnRepo)

	seedShares(t, ledger, 1, "1000")
	require.NoError(t, svc.Invest(ctx, 42, dec("500")))

	last := txnRepo.txns[len(txnRepo.txns)-1]
	assert.Equal(t, uint(42), last.UserID)
	assert.Equal(t, string(domain.KindBondInvestment), last.Kind)
	assert.Equal(t, RefBond, last.Reference)
}
