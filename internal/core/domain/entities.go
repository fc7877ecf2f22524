package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleStaff  Role = "STAFF"
	RoleAdmin  Role = "ADMIN"
)

// TransactionKind classifies a ledger entry
type TransactionKind string

const (
	KindDeposit        TransactionKind = "DEPOSIT"
	KindWithdrawal     TransactionKind = "WITHDRAWAL"
	KindFine           TransactionKind = "FINE"
	KindShareTransfer  TransactionKind = "SHARE_TRANSFER"
	KindBondInvestment TransactionKind = "BOND_INVESTMENT"
)

// Valid reports whether the kind is one of the known ledger entry kinds
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindFine, KindShareTransfer, KindBondInvestment:
		return true
	}
	return false
}

// LoanStatus represents loan lifecycle state
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanRejected LoanStatus = "REJECTED"
	LoanPaid     LoanStatus = "PAID"
)

// Advisory projection rates. Neither is ever written to the ledger;
// both are recomputed on every read.
var (
	DividendRate   = decimal.NewFromFloat(0.10)
	BondReturnRate = decimal.NewFromFloat(0.15)
)

// Balance is the derived position of a single member, recomputed from the
// full transaction history on every read.
type Balance struct {
	Savings            decimal.Decimal `json:"savings"`
	ShareCapital       decimal.Decimal `json:"share_capital"`
	ProjectedDividends decimal.Decimal `json:"dividends"`
}

// CapitalPool is the derived system-wide share capital position
type CapitalPool struct {
	SharePool        decimal.Decimal `json:"share_pool"`
	BondsBalance     decimal.Decimal `json:"bonds_balance"`
	AvailableCapital decimal.Decimal `json:"available_capital"`
	ProjectedReturns decimal.Decimal `json:"returns"`
}

// NewCapitalPool derives the pool position from system-wide sums
func NewCapitalPool(sharePool, bonds decimal.Decimal) CapitalPool {
	return CapitalPool{
		SharePool:        sharePool,
		BondsBalance:     bonds,
		AvailableCapital: sharePool.Sub(bonds),
		ProjectedReturns: bonds.Mul(BondReturnRate).Round(2),
	}
}

// TotalDue computes the amount owed on a loan using simple interest:
// A = P(1 + r/100 × m/12), rounded to two decimal places.
// Computed exactly once when the application is recorded, never revised.
func TotalDue(principal, annualRate decimal.Decimal, durationMonths int) decimal.Decimal {
	months := decimal.NewFromInt(int64(durationMonths))
	interest := principal.Mul(annualRate).Mul(months).Div(decimal.NewFromInt(1200))
	return principal.Add(interest).Round(2)
}

// LoanStatusInfo is the lifecycle summary of a member's most recent
// application, as shown on the dashboard.
type LoanStatusInfo struct {
	Status LoanStatus      `json:"status"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// TransactionView is a single ledger entry as exposed to read models
type TransactionView struct {
	Kind      TransactionKind `json:"transaction_type"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Reference string          `json:"reference_code"`
}
