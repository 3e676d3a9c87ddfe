package controllers

import (
	"context"

	"bms/internal/models"
	"bms/internal/services"
)

// AccountOperations is the rule-engine surface used by the handlers.
type AccountOperations interface {
	Deposit(ctx context.Context, a *models.Account, amount float64) error
	Withdraw(ctx context.Context, a *models.Account, amount float64) error
	ApplyMonthlyInterest(ctx context.Context, a *models.Account) error
	OpenAccount(ctx context.Context, in services.OpenAccountInput) (*models.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (*models.Account, error)
	GetCustomerAccount(ctx context.Context, customerID uint, number string) (*models.Account, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*services.Principal, error)
	RegisterCustomer(ctx context.Context, in services.RegisterCustomerInput) (*models.Customer, error)
}

type CustomerDirectory interface {
	Get(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Delete(ctx context.Context, id uint) (bool, error)
}
