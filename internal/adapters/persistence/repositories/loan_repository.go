package repositories

import (
	"context"
	"errors"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loanRepository is the GORM implementation of LoanRepository
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *loanRepository) HasActive(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("user_id = ? AND status IN ?", userID, []string{string(domain.LoanPending), string(domain.LoanApproved)}).
		Count(&count).Error
	return count > 0, err
}

func (r *loanRepository) ApprovedByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(domain.LoanApproved)).
		Order("approved_at ASC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) SumApprovedBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("user_id = ? AND status = ?", userID, string(domain.LoanApproved)).
		Select("COALESCE(SUM(balance_due), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *loanRepository) CountApproved(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("user_id = ? AND status = ?", userID, string(domain.LoanApproved)).
		Count(&count).Error
	return count, err
}

func (r *loanRepository) LatestByUser(ctx context.Context, userID uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC, id DESC").
		First(&loan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) ListPending(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", string(domain.LoanPending)).
		Order("applied_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&loans).Error
	return loans, err
}

// SettleRepayments writes one allocated payment in a single transaction:
// a repayment row per touched loan, the updated balances/statuses, and the
// ledger withdrawal. A failed step rolls the whole payment back.
func (r *loanRepository) SettleRepayments(ctx context.Context, repayments []domain.Repayment, ledger *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rep := range repayments {
			row := &models.LoanRepayment{
				LoanID: rep.LoanID,
				Amount: rep.Amount,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}

			updates := map[string]interface{}{"balance_due": rep.NewBalance}
			if rep.Settled {
				updates["status"] = string(domain.LoanPaid)
			}
			if err := tx.Model(&models.Loan{}).Where("id = ?", rep.LoanID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if ledger != nil {
			if err := tx.Create(ledger).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
