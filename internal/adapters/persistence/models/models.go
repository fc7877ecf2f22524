package models

import (
	"time"

	"harambee-sacco/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents users table (members, staff and admins)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'MEMBER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the user may perform staff operations
func (u *User) IsStaff() bool {
	return u.Role == string(domain.RoleStaff) || u.Role == string(domain.RoleAdmin)
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Transaction represents the append-only ledger. Rows are only ever
// inserted; nothing in the codebase updates or deletes one (deleting a
// member cascades their whole history, which is the one exception).
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Kind      string          `gorm:"size:20;not null;index" json:"transaction_type"`
	Date      time.Time       `gorm:"autoCreateTime;index" json:"date"`
	Reference string          `gorm:"size:50" json:"reference_code"`
	User      User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) ToView() domain.TransactionView {
	return domain.TransactionView{
		Kind:      domain.TransactionKind(t.Kind),
		Amount:    t.Amount,
		Date:      t.Date,
		Reference: t.Reference,
	}
}

// Loan represents loans table. TotalDue is written once at application time
// and never recomputed; BalanceDue is the only mutable money field and is
// driven down by repayments.
type Loan struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	Principal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal_amount"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	DurationMonths  int             `gorm:"not null" json:"duration_months"`
	TotalDue        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_due"`
	BalanceDue      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_due"`
	Status          string          `gorm:"size:20;not null;index;default:'PENDING'" json:"status"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	AppliedAt       time.Time       `gorm:"autoCreateTime;index" json:"date_applied"`
	ApprovedAt      *time.Time      `json:"date_approved,omitempty"`
	User            User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Repayments      []LoanRepayment `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanRepayment represents loan_repayments table. Append-only, like the
// ledger; each row records one slice of a payment applied to one loan.
type LoanRepayment struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	LoanID uint            `gorm:"index;not null" json:"loan_id"`
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Date   time.Time       `gorm:"autoCreateTime" json:"date"`
}

func (LoanRepayment) TableName() string {
	return "loan_repayments"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Transaction{},
		&Loan{},
		&LoanRepayment{},
	)
}
