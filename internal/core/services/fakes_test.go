package services

import (
	"context"
	"sort"
	"time"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the query semantics of the GORM
// implementations closely enough for service-level tests: stable IDs,
// newest-first listings, and the same aggregate sums.

type fakeTxnRepo struct {
	nextID uint
	txns   []*models.Transaction
}

func newFakeTxnRepo() *fakeTxnRepo {
	return &fakeTxnRepo{nextID: 1}
}

func (r *fakeTxnRepo) Create(_ context.Context, txn *models.Transaction) error {
	txn.ID = r.nextID
	r.nextID++
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}
	r.txns = append(r.txns, txn)
	return nil
}

func (r *fakeTxnRepo) SumByKinds(_ context.Context, userID uint, kinds ...domain.TransactionKind) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range r.txns {
		if txn.UserID != userID {
			continue
		}
		for _, kind := range kinds {
			if txn.Kind == string(kind) {
				sum = sum.Add(txn.Amount)
				break
			}
		}
	}
	return sum, nil
}

func (r *fakeTxnRepo) SumAllByKind(_ context.Context, kind domain.TransactionKind) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range r.txns {
		if txn.Kind == string(kind) {
			sum = sum.Add(txn.Amount)
		}
	}
	return sum, nil
}

func (r *fakeTxnRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Transaction, int64, error) {
	var mine []*models.Transaction
	for _, txn := range r.txns {
		if txn.UserID == userID {
			mine = append(mine, txn)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		if mine[i].Date.Equal(mine[j].Date) {
			return mine[i].ID > mine[j].ID
		}
		return mine[i].Date.After(mine[j].Date)
	})

	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

type fakeLoanRepo struct {
	nextID uint
	loans  []*models.Loan

	// the ledger entry of a settled repayment lands here, like the GORM
	// implementation writing both inside one transaction
	txnRepo *fakeTxnRepo
}

func newFakeLoanRepo(txnRepo *fakeTxnRepo) *fakeLoanRepo {
	return &fakeLoanRepo{nextID: 1, txnRepo: txnRepo}
}

func (r *fakeLoanRepo) Create(_ context.Context, loan *models.Loan) error {
	loan.ID = r.nextID
	r.nextID++
	if loan.AppliedAt.IsZero() {
		loan.AppliedAt = time.Now()
	}
	r.loans = append(r.loans, loan)
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	for _, loan := range r.loans {
		if loan.ID == id {
			return loan, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLoanRepo) Update(_ context.Context, loan *models.Loan) error {
	for i, existing := range r.loans {
		if existing.ID == loan.ID {
			r.loans[i] = loan
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeLoanRepo) HasActive(_ context.Context, userID uint) (bool, error) {
	for _, loan := range r.loans {
		if loan.UserID == userID &&
			(loan.Status == string(domain.LoanPending) || loan.Status == string(domain.LoanApproved)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLoanRepo) ApprovedByUser(_ context.Context, userID uint) ([]*models.Loan, error) {
	var approved []*models.Loan
	for _, loan := range r.loans {
		if loan.UserID == userID && loan.Status == string(domain.LoanApproved) {
			approved = append(approved, loan)
		}
	}
	sort.Slice(approved, func(i, j int) bool {
		return approved[i].ApprovedAt.Before(*approved[j].ApprovedAt)
	})
	return approved, nil
}

func (r *fakeLoanRepo) SumApprovedBalance(_ context.Context, userID uint) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, loan := range r.loans {
		if loan.UserID == userID && loan.Status == string(domain.LoanApproved) {
			sum = sum.Add(loan.BalanceDue)
		}
	}
	return sum, nil
}

func (r *fakeLoanRepo) CountApproved(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, loan := range r.loans {
		if loan.UserID == userID && loan.Status == string(domain.LoanApproved) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) LatestByUser(_ context.Context, userID uint) (*models.Loan, error) {
	var latest *models.Loan
	for _, loan := range r.loans {
		if loan.UserID != userID {
			continue
		}
		if latest == nil || loan.AppliedAt.After(latest.AppliedAt) ||
			(loan.AppliedAt.Equal(latest.AppliedAt) && loan.ID > latest.ID) {
			latest = loan
		}
	}
	return latest, nil
}

func (r *fakeLoanRepo) ListPending(_ context.Context) ([]*models.Loan, error) {
	var pending []*models.Loan
	for _, loan := range r.loans {
		if loan.Status == string(domain.LoanPending) {
			pending = append(pending, loan)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].AppliedAt.After(pending[j].AppliedAt)
	})
	return pending, nil
}

func (r *fakeLoanRepo) ListByUser(_ context.Context, userID uint) ([]*models.Loan, error) {
	var mine []*models.Loan
	for _, loan := range r.loans {
		if loan.UserID == userID {
			mine = append(mine, loan)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].AppliedAt.After(mine[j].AppliedAt)
	})
	return mine, nil
}

func (r *fakeLoanRepo) SettleRepayments(ctx context.Context, repayments []domain.Repayment, ledger *models.Transaction) error {
	for _, rep := range repayments {
		loan, err := r.GetByID(ctx, rep.LoanID)
		if err != nil {
			return err
		}
		loan.BalanceDue = rep.NewBalance
		if rep.Settled {
			loan.Status = string(domain.LoanPaid)
		}
	}
	if ledger != nil {
		return r.txnRepo.Create(ctx, ledger)
	}
	return nil
}

type fakeUserRepo struct {
	nextID uint
	users  []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	for i, existing := range r.users {
		if existing.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	for i, user := range r.users {
		if user.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ListMembers(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var members []*models.User
	for _, user := range r.users {
		if user.Role == string(domain.RoleMember) {
			members = append(members, user)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].CreatedAt.After(members[j].CreatedAt)
	})

	total := int64(len(members))
	if offset >= len(members) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(members) {
		end = len(members)
	}
	return members[offset:end], total, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeRefreshTokenRepo struct {
	nextID uint
	tokens []*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens = append(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var kept []*models.RefreshToken
	var deleted int64
	for _, token := range r.tokens {
		if token.IsExpired() {
			deleted++
			continue
		}
		kept = append(kept, token)
	}
	r.tokens = kept
	return deleted, nil
}
