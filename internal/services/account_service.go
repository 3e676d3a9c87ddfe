package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"

	"bms/internal/models"
)

// AccountStore is the persistence surface the rule engine writes through.
type AccountStore interface {
	CreateAccountWithEmployment(ctx context.Context, a *models.Account, employment *models.Employment) error
	UpdateBalance(ctx context.Context, a *models.Account) error
	GetAccountByNumber(ctx context.Context, number string) (*models.Account, error)
	GetCustomerAccount(ctx context.Context, customerID uint, number string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
}

// CustomerStore is what account opening needs to know about the holder.
type CustomerStore interface {
	LoadCustomer(ctx context.Context, id uint) (*models.Customer, error)
}

// AccountService validates a request, mutates the account in memory and
// then persists it. A failed write restores the previous balance.
type AccountService struct {
	accounts  AccountStore
	customers CustomerStore
}

func NewAccountService(accounts AccountStore, customers CustomerStore) *AccountService {
	return &AccountService{accounts: accounts, customers: customers}
}

// OpenAccountInput carries an account opening request of any kind.
// Employment is only consulted for cheque accounts.
type OpenAccountInput struct {
	CustomerID     uint
	Kind           string
	Number         string
	InitialDeposit float64
	Branch         string
	Employment     *models.Employment
}

func (s *AccountService) Deposit(ctx context.Context, a *models.Account, amount float64) error {
	if !(amount > 0) {
		return models.ErrInvalidAmount
	}
	prev := a.Balance
	if err := a.Deposit(amount); err != nil {
		return err
	}
	if err := s.persistBalance(ctx, a, prev); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"account": a.Number,
		"amount":  amount,
		"balance": a.Balance,
	}).Info("deposit applied")
	return nil
}

// Withdraw persists only when the account kind accepted the debit.
func (s *AccountService) Withdraw(ctx context.Context, a *models.Account, amount float64) error {
	if !(amount > 0) {
		return models.ErrInvalidAmount
	}
	prev := a.Balance
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	if err := s.persistBalance(ctx, a, prev); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"account": a.Number,
		"amount":  amount,
		"balance": a.Balance,
	}).Info("withdrawal applied")
	return nil
}

// ApplyMonthlyInterest always writes the balance back, even for kinds that
// earn nothing.
func (s *AccountService) ApplyMonthlyInterest(ctx context.Context, a *models.Account) error {
	prev := a.Balance
	if err := a.ApplyMonthlyInterest(); err != nil {
		return err
	}
	if err := s.persistBalance(ctx, a, prev); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"account": a.Number,
		"type":    a.Kind,
		"before":  prev,
		"balance": a.Balance,
	}).Info("monthly interest applied")
	return nil
}

// ApplyInterestToAll runs ApplyMonthlyInterest over every account in id
// order and stops at the first failure. It returns how many were updated.
func (s *AccountService) ApplyInterestToAll(ctx context.Context) (int, error) {
	all, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return 0, err
	}
	for i := range all {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.ApplyMonthlyInterest(ctx, &all[i]); err != nil {
			return i, fmt.Errorf("account %s: %w", all[i].Number, err)
		}
	}
	return len(all), nil
}

func (s *AccountService) persistBalance(ctx context.Context, a *models.Account, prev float64) error {
	if err := s.accounts.UpdateBalance(ctx, a); err != nil {
		a.Balance = prev
		logrus.WithError(err).WithField("account", a.Number).Error("balance not saved")
		return err
	}
	return nil
}

func (s *AccountService) CreateSavingsAccount(ctx context.Context, customerID uint, number string, initialDeposit float64, branch string) (*models.Account, error) {
	if !(initialDeposit >= 0) {
		return nil, models.ErrNegativeDeposit
	}
	if _, err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.create(ctx, &models.Account{
		Number:     number,
		Balance:    initialDeposit,
		Branch:     branch,
		CustomerID: customerID,
		Kind:       models.KindSavings,
	}, nil)
}

func (s *AccountService) CreateInvestmentAccount(ctx context.Context, customerID uint, number string, initialDeposit float64, branch string) (*models.Account, error) {
	minimum := models.MinimumOpeningDeposit(models.KindInvestment)
	if !(initialDeposit >= minimum) {
		return nil, fmt.Errorf("%w: need at least %.2f, got %.2f", models.ErrBelowMinimumDeposit, minimum, initialDeposit)
	}
	if _, err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.create(ctx, &models.Account{
		Number:     number,
		Balance:    initialDeposit,
		Branch:     branch,
		CustomerID: customerID,
		Kind:       models.KindInvestment,
	}, nil)
}

// CreateChequeAccount opens a cheque account. With a nil employment the
// customer's stored employer is used; an explicit employment is copied onto
// the account and saved on the customer if they had none yet, in the same
// write as the account itself.
func (s *AccountService) CreateChequeAccount(ctx context.Context, customerID uint, number string, initialDeposit float64, branch string, employment *models.Employment) (*models.Account, error) {
	if !(initialDeposit >= 0) {
		return nil, models.ErrNegativeDeposit
	}
	customer, err := s.requireCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var employer, backfill *models.Employment
	if employment == nil {
		if !customer.HasEmploymentInfo() {
			return nil, models.ErrEmploymentRequired
		}
		e := *customer.Employment
		employer = &e
	} else {
		employer = models.NewEmployment(employment.EmployerName, employment.EmployerAddress)
		if employer == nil {
			return nil, models.ErrEmploymentRequired
		}
		if !customer.HasEmploymentInfo() {
			e := *employer
			backfill = &e
		}
	}

	return s.create(ctx, &models.Account{
		Number:     number,
		Balance:    initialDeposit,
		Branch:     branch,
		CustomerID: customerID,
		Kind:       models.KindCheque,
		Employer:   employer,
	}, backfill)
}

// OpenAccount dispatches on in.Kind, accepting it in any letter case.
func (s *AccountService) OpenAccount(ctx context.Context, in OpenAccountInput) (*models.Account, error) {
	kind, err := models.ParseKind(in.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown account type %q", models.ErrValidation, in.Kind)
	}
	switch kind {
	case models.KindSavings:
		return s.CreateSavingsAccount(ctx, in.CustomerID, in.Number, in.InitialDeposit, in.Branch)
	case models.KindInvestment:
		return s.CreateInvestmentAccount(ctx, in.CustomerID, in.Number, in.InitialDeposit, in.Branch)
	default:
		return s.CreateChequeAccount(ctx, in.CustomerID, in.Number, in.InitialDeposit, in.Branch, in.Employment)
	}
}

// GetAccountByNumber returns (nil, nil) when no account carries number.
func (s *AccountService) GetAccountByNumber(ctx context.Context, number string) (*models.Account, error) {
	return s.accounts.GetAccountByNumber(ctx, number)
}

// GetCustomerAccount only finds accounts owned by customerID.
func (s *AccountService) GetCustomerAccount(ctx context.Context, customerID uint, number string) (*models.Account, error) {
	return s.accounts.GetCustomerAccount(ctx, customerID, number)
}

func (s *AccountService) requireCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	c, err := s.customers.LoadCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: id %d", models.ErrCustomerNotFound, id)
	}
	return c, nil
}

// create stores a, plus the holder's employment when backfill is non-nil.
func (s *AccountService) create(ctx context.Context, a *models.Account, backfill *models.Employment) (*models.Account, error) {
	a.Number = strings.TrimSpace(a.Number)
	if a.Number == "" {
		a.Number = newAccountNumber(a.Kind)
	}
	if err := s.accounts.CreateAccountWithEmployment(ctx, a, backfill); err != nil {
		return nil, err
	}
	if backfill != nil {
		logrus.WithField("customer_id", a.CustomerID).Info("employment recorded from cheque opening")
	}
	logrus.WithFields(logrus.Fields{
		"account":     a.Number,
		"type":        a.Kind,
		"customer_id": a.CustomerID,
		"balance":     a.Balance,
	}).Info("account opened")
	return a, nil
}

var numberPrefix = map[models.Kind]string{
	models.KindSavings:    "SAV",
	models.KindInvestment: "INV",
	models.KindCheque:     "CHK",
}

func newAccountNumber(k models.Kind) string {
	return fmt.Sprintf("%s-%010d", numberPrefix[k], uuid.New().ID())
}
