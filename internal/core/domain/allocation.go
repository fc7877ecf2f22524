package domain

import "github.com/shopspring/decimal"

// OverpaymentPolicy decides what happens to a repayment remainder once every
// approved loan has been settled. The ledger this system replaces silently
// forfeited the remainder; whether that was intended is still an open product
// question, so both behaviours are supported and selected by configuration.
type OverpaymentPolicy string

const (
	// OverpayForfeit drops the remainder: the full repayment amount is
	// withdrawn from the member's current account regardless of how much
	// debt it actually cleared.
	OverpayForfeit OverpaymentPolicy = "FORFEIT"

	// OverpayCredit leaves the remainder in the member's current account:
	// only the allocated total is withdrawn.
	OverpayCredit OverpaymentPolicy = "CREDIT"
)

// Valid reports whether the policy is a known one
func (p OverpaymentPolicy) Valid() bool {
	return p == OverpayForfeit || p == OverpayCredit
}

// LoanDebt is the outstanding position of a single approved loan, in the
// order repayments should be applied (oldest approval first).
type LoanDebt struct {
	LoanID     uint
	BalanceDue decimal.Decimal
}

// Repayment is one slice of an incoming payment applied to one loan
type Repayment struct {
	LoanID     uint
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
	Settled    bool
}

// AllocatePayment splits amount greedily across debts in the given order:
// each loan receives min(remaining, balance_due) until the payment is
// exhausted or every loan is settled. Balances never go negative; a loan
// whose balance reaches zero is marked settled. The second return value is
// whatever remains after all debts are cleared.
func AllocatePayment(debts []LoanDebt, amount decimal.Decimal) ([]Repayment, decimal.Decimal) {
	remaining := amount
	var repayments []Repayment

	for _, debt := range debts {
		if remaining.Sign() <= 0 {
			break
		}

		pay := remaining
		if pay.GreaterThan(debt.BalanceDue) {
			pay = debt.BalanceDue
		}

		newBalance := debt.BalanceDue.Sub(pay)
		repayments = append(repayments, Repayment{
			LoanID:     debt.LoanID,
			Amount:     pay,
			NewBalance: newBalance,
			Settled:    newBalance.Sign() == 0,
		})
		remaining = remaining.Sub(pay)
	}

	return repayments, remaining
}
