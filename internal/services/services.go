// Package services holds the banking rules on top of the store.
package services

import "bms/internal/store"

// Services bundles the three services over one store.
type Services struct {
	Accounts  *AccountService
	Auth      *AuthService
	Customers *CustomerService
}

func New(st *store.Store) *Services {
	return &Services{
		Accounts:  NewAccountService(st, st),
		Auth:      NewAuthService(st),
		Customers: NewCustomerService(st),
	}
}
