package repositories

import (
	"context"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ListMembers(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// TransactionRepository defines ledger data access. The ledger is
// append-only: Create is the only write.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error

	// SumByKinds sums a member's entries over the given kinds
	SumByKinds(ctx context.Context, userID uint, kinds ...domain.TransactionKind) (decimal.Decimal, error)

	// SumAllByKind sums entries of one kind across every member
	SumAllByKind(ctx context.Context, kind domain.TransactionKind) (decimal.Decimal, error)

	// ListByUser returns a member's entries newest first, with the total count
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Transaction, int64, error)
}

// LoanRepository defines loan and repayment data access
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error

	// HasActive reports whether the member has a PENDING or APPROVED loan
	HasActive(ctx context.Context, userID uint) (bool, error)

	// ApprovedByUser returns APPROVED loans ordered by approval date, oldest first
	ApprovedByUser(ctx context.Context, userID uint) ([]*models.Loan, error)

	// SumApprovedBalance sums balance_due over the member's APPROVED loans
	SumApprovedBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	CountApproved(ctx context.Context, userID uint) (int64, error)

	// LatestByUser returns the member's most recent application, nil if none
	LatestByUser(ctx context.Context, userID uint) (*models.Loan, error)

	ListPending(ctx context.Context) ([]*models.Loan, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)

	// SettleRepayments persists one allocated payment atomically: the
	// repayment rows, the updated loan balances/statuses, and the single
	// ledger withdrawal. Nothing is written if any part fails.
	SettleRepayments(ctx context.Context, repayments []domain.Repayment, ledger *models.Transaction) error
}
