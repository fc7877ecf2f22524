package services

import (
	"context"
	"time"

	"harambee-sacco/internal/adapters/persistence/repositories"
	"harambee-sacco/internal/core/domain"
	"harambee-sacco/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

// DashboardService assembles the read models consumed by the member and
// admin frontends. Everything here is derived on the fly; nothing is cached.
type DashboardService struct {
	ledger      *LedgerService
	investments *InvestmentService
	loanRepo    repositories.LoanRepository
	userRepo    repositories.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	ledger *LedgerService,
	investments *InvestmentService,
	loanRepo repositories.LoanRepository,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		ledger:      ledger,
		investments: investments,
		loanRepo:    loanRepo,
		userRepo:    userRepo,
	}
}

// MemberDashboard is the member-facing snapshot
type MemberDashboard struct {
	Savings      decimal.Decimal        `json:"savings"`
	ShareCapital decimal.Decimal        `json:"share_capital"`
	Dividends    decimal.Decimal        `json:"dividends"`
	LoanBalance  decimal.Decimal        `json:"loan_balance"`
	LoansCount   int64                  `json:"loans_count"`
	RecentLoan   *domain.LoanStatusInfo `json:"recent_loan"`

	Transactions []domain.TransactionView `json:"transactions"`
	Meta         *pagination.Meta         `json:"meta"`
}

// GetMemberDashboard derives a member's snapshot for one transaction page
func (s *DashboardService) GetMemberDashboard(ctx context.Context, userID uint, params *pagination.Params) (*MemberDashboard, error) {
	balance, err := s.ledger.BalanceFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	loanBalance, err := s.loanRepo.SumApprovedBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	loansCount, err := s.loanRepo.CountApproved(ctx, userID)
	if err != nil {
		return nil, err
	}

	var recent *domain.LoanStatusInfo
	latest, err := s.loanRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		info := domain.LoanStatusInfo{
			Status: domain.LoanStatus(latest.Status),
			Amount: latest.Principal,
		}
		if latest.Status == string(domain.LoanRejected) && latest.RejectionReason != nil {
			info.Reason = *latest.RejectionReason
		}
		recent = &info
	}

	txns, total, err := s.ledger.Statement(ctx, userID, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	return &MemberDashboard{
		Savings:      balance.Savings,
		ShareCapital: balance.ShareCapital,
		Dividends:    balance.ProjectedDividends,
		LoanBalance:  loanBalance,
		LoansCount:   loansCount,
		RecentLoan:   recent,
		Transactions: txns,
		Meta:         pagination.GetMeta(params, total),
	}, nil
}

// MemberSummary is one row of the admin overview
type MemberSummary struct {
	ID          uint            `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Savings     decimal.Decimal `json:"savings"`
	LoanBalance decimal.Decimal `json:"loan_balance"`
	Joined      time.Time       `json:"joined"`
}

// AdminDashboard is the staff-facing system overview
type AdminDashboard struct {
	TotalMembers     int64           `json:"total_members"`
	SharePool        decimal.Decimal `json:"share_pool"`
	BondsBalance     decimal.Decimal `json:"bonds_balance"`
	AvailableCapital decimal.Decimal `json:"available_capital"`
	Returns          decimal.Decimal `json:"returns"`
	Members          []MemberSummary `json:"members"`
}

// adminMemberLimit bounds the per-member listing; the roster is small
const adminMemberLimit = 500

// GetAdminDashboard derives the system-wide overview: the capital pool
// position plus a per-member savings and debt summary, newest member first.
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	pool, err := s.investments.Pool(ctx)
	if err != nil {
		return nil, err
	}

	members, total, err := s.userRepo.ListMembers(ctx, 0, adminMemberLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]MemberSummary, 0, len(members))
	for _, member := range members {
		savings, err := s.ledger.Available(ctx, member.ID)
		if err != nil {
			return nil, err
		}
		loanBalance, err := s.loanRepo.SumApprovedBalance(ctx, member.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, MemberSummary{
			ID:          member.ID,
			Username:    member.Username,
			Email:       member.Email,
			Savings:     savings,
			LoanBalance: loanBalance,
			Joined:      member.CreatedAt,
		})
	}

	return &AdminDashboard{
		TotalMembers:     total,
		SharePool:        pool.SharePool,
		BondsBalance:     pool.BondsBalance,
		AvailableCapital: pool.AvailableCapital,
		Returns:          pool.ProjectedReturns,
		Members:          summaries,
	}, nil
}
