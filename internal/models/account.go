// internal/models/account.go
package models

import (
	"fmt"
	"strings"
)

// Kind is the discriminator stored in the accounts.type column.
type Kind string

const (
	KindSavings    Kind = "SAVINGS"
	KindInvestment Kind = "INVESTMENT"
	KindCheque     Kind = "CHEQUE"
)

const (
	SavingsMonthlyRate       = 0.0005
	InvestmentMonthlyRate    = 0.05
	InvestmentMinimumDeposit = 500.00 // BWP
)

// Account is a single bank account. The Kind selects which policy governs
// withdrawals and interest; Employer is only set for cheque accounts.
type Account struct {
	ID         uint        `json:"id"`
	Number     string      `json:"account_number"`
	Balance    float64     `json:"balance"`
	Branch     string      `json:"branch"`
	CustomerID uint        `json:"customer_id"`
	Kind       Kind        `json:"type"`
	Employer   *Employment `json:"employer,omitempty"`
}

// policy is the per-kind capability table.
type policy struct {
	withdraw       func(a *Account, amount float64) error
	interest       func(a *Account)
	minimumOpening float64
	needsEmployer  bool
}

var policies = map[Kind]policy{
	KindSavings: {
		withdraw: refuseWithdrawal,
		interest: accrue(SavingsMonthlyRate),
	},
	KindInvestment: {
		withdraw:       debit,
		interest:       accrue(InvestmentMonthlyRate),
		minimumOpening: InvestmentMinimumDeposit,
	},
	KindCheque: {
		withdraw:      debit,
		interest:      func(*Account) {},
		needsEmployer: true,
	},
}

// ParseKind accepts the discriminator in any case and surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := policies[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccountKind, s)
	}
	return k, nil
}

// Valid reports whether k names a known account variant.
func (k Kind) Valid() bool {
	_, ok := policies[k]
	return ok
}

// MinimumOpeningDeposit is the smallest initial balance allowed when opening
// an account of kind k.
func MinimumOpeningDeposit(k Kind) float64 {
	return policies[k].minimumOpening
}

// RequiresEmployment reports whether opening an account of kind k needs the
// holder's employer details.
func RequiresEmployment(k Kind) bool {
	return policies[k].needsEmployer
}

func (a *Account) policy() (policy, error) {
	p, ok := policies[a.Kind]
	if !ok {
		return policy{}, fmt.Errorf("%w: %q on account %s", ErrUnknownAccountKind, a.Kind, a.Number)
	}
	return p, nil
}

// Deposit credits amount to the balance. Every kind accepts any positive amount.
func (a *Account) Deposit(amount float64) error {
	if _, err := a.policy(); err != nil {
		return err
	}
	if !(amount > 0) {
		return ErrInvalidAmount
	}
	a.Balance += amount
	return nil
}

// Withdraw debits amount according to the account kind. The balance is left
// untouched whenever an error is returned.
func (a *Account) Withdraw(amount float64) error {
	p, err := a.policy()
	if err != nil {
		return err
	}
	return p.withdraw(a, amount)
}

// ApplyMonthlyInterest adds one month of interest. Cheque accounts earn none.
func (a *Account) ApplyMonthlyInterest() error {
	p, err := a.policy()
	if err != nil {
		return err
	}
	p.interest(a)
	return nil
}

func refuseWithdrawal(*Account, float64) error {
	return ErrWithdrawalNotSupported
}

func debit(a *Account, amount float64) error {
	if !(amount > 0) {
		return ErrInvalidAmount
	}
	if amount > a.Balance {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}

func accrue(rate float64) func(*Account) {
	return func(a *Account) {
		a.Balance += a.Balance * rate
	}
}
