package services

import (
	"context"
	"testing"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/core/domain"
	"harambee-sacco/internal/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	dashboard *DashboardService
	ledger    *LedgerService
	loans     *LoanService
	users     *fakeUserRepo
}

func newDashboardFixture() *dashboardFixture {
	txnRepo := newFakeTxnRepo()
	loanRepo := newFakeLoanRepo(txnRepo)
	userRepo := newFakeUserRepo()
	locks := NewMemberLocks()

	ledger := NewLedgerService(txnRepo, locks)
	loans := NewLoanService(loanRepo, txnRepo, locks, decimal.NewFromInt(12), domain.OverpayForfeit)
	investments := NewInvestmentService(txnRepo)

	return &dashboardFixture{
		dashboard: NewDashboardService(ledger, investments, loanRepo, userRepo),
		ledger:    ledger,
		loans:     loans,
		users:     userRepo,
	}
}

func TestMemberDashboardAfterDeposit(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	require.NoError(t, f.ledger.Deposit(ctx, 1, dec("1000")))

	data, err := f.dashboard.GetMemberDashboard(ctx, 1, pagination.New(1, pagination.DashboardLimit))
	require.NoError(t, err)

	assert.True(t, data.Savings.Equal(dec("1000")), "savings = %s", data.Savings)
	assert.True(t, data.ShareCapital.IsZero())
	assert.True(t, data.LoanBalance.IsZero())
	assert.Zero(t, data.LoansCount)
	assert.Nil(t, data.RecentLoan)
	assert.Len(t, data.Transactions, 1)
}

func TestMemberDashboardLoanPosition(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	loan, err := f.loans.Apply(ctx, 1, dec("10000"), 12)
	require.NoError(t, err)
	_, err = f.loans.Approve(ctx, loan.ID)
	require.NoError(t, err)

	data, err := f.dashboard.GetMemberDashboard(ctx, 1, pagination.New(1, pagination.DashboardLimit))
	require.NoError(t, err)

	assert.True(t, data.LoanBalance.Equal(dec("11200")))
	assert.Equal(t, int64(1), data.LoansCount)
	require.NotNil(t, data.RecentLoan)
	assert.Equal(t, domain.LoanApproved, data.RecentLoan.Status)
	assert.True(t, data.RecentLoan.Amount.Equal(dec("10000")))
	assert.Empty(t, data.RecentLoan.Reason)
}

func TestMemberDashboardRejectedLoanCarriesReason(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	loan, err := f.loans.Apply(ctx, 1, dec("5000"), 6)
	require.NoError(t, err)
	_, err = f.loans.Reject(ctx, loan.ID, "savings too low")
	require.NoError(t, err)

	data, err := f.dashboard.GetMemberDashboard(ctx, 1, pagination.New(1, pagination.DashboardLimit))
	require.NoError(t, err)

	require.NotNil(t, data.RecentLoan)
	assert.Equal(t, domain.LoanRejected, data.RecentLoan.Status)
	assert.Equal(t, "savings too low", data.RecentLoan.Reason)
}

func TestMemberDashboardTransactionPaging(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	for i := 0; i < 12; i++ {
		require.NoError(t, f.ledger.Deposit(ctx, 1, dec("10")))
	}

	page1, err := f.dashboard.GetMemberDashboard(ctx, 1, pagination.New(1, pagination.DashboardLimit))
	require.NoError(t, err)
	assert.Len(t, page1.Transactions, 5)
	assert.Equal(t, 3, page1.Meta.TotalPages)
	assert.True(t, page1.Meta.HasNext)
	assert.False(t, page1.Meta.HasPrev)

	page3, err := f.dashboard.GetMemberDashboard(ctx, 1, pagination.New(3, pagination.DashboardLimit))
	require.NoError(t, err)
	assert.Len(t, page3.Transactions, 2)
	assert.False(t, page3.Meta.HasNext)
	assert.True(t, page3.Meta.HasPrev)
}

func TestAdminDashboardOverview(t *testing.T) {
	ctx := context.Background()
	f := newDashboardFixture()

	require.NoError(t, f.users.Create(ctx, &models.User{Username: "wanjiku", Email: "wanjiku@example.com", Role: string(domain.RoleMember)}))
	require.NoError(t, f.users.Create(ctx, &models.User{Username: "otieno", Email: "otieno@example.com", Role: string(domain.RoleMember)}))
	require.NoError(t, f.users.Create(ctx, &models.User{Username: "admin", Email: "admin@example.com", Role: string(domain.RoleAdmin)}))

	require.NoError(t, f.ledger.Deposit(ctx, 1, dec("2000")))
	require.NoError(t, f.ledger.TransferToShares(ctx, 1, dec("500")))

	data, err := f.dashboard.GetAdminDashboard(ctx)
	require.NoError(t, err)

	// Staff accounts are not counted among members
	assert.Equal(t, int64(2), data.TotalMembers)
	assert.True(t, data.SharePool.Equal(dec("500")))
	assert.True(t, data.AvailableCapital.Equal(dec("500")))
	require.Len(t, data.Members, 2)

	byName := map[string]MemberSummary{}
	for _, m := range data.Members {
		byName[m.Username] = m
	}
	assert.True(t, byName["wanjiku"].Savings.Equal(dec("1500")), "savings = %s", byName["wanjiku"].Savings)
	assert.True(t, byName["otieno"].Savings.IsZero())
}
