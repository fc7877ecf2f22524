package repositories

import (
	"context"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transactionRepository is the GORM implementation of TransactionRepository
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) SumByKinds(ctx context.Context, userID uint, kinds ...domain.TransactionKind) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ? AND kind IN ?", userID, kindStrings(kinds)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *transactionRepository) SumAllByKind(ctx context.Context, kind domain.TransactionKind) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("kind = ?", string(kind)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Transaction, int64, error) {
	var txns []*models.Transaction
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txns).Error

	return txns, total, err
}

func kindStrings(kinds []domain.TransactionKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
