// internal/models/customer.go
package models

import "strings"

// Employment holds the employer details that gate cheque accounts.
type Employment struct {
	EmployerName    string `json:"employer_name"`
	EmployerAddress string `json:"employer_address"`
}

// NewEmployment returns nil unless both fields carry text.
func NewEmployment(name, address string) *Employment {
	e := &Employment{EmployerName: strings.TrimSpace(name), EmployerAddress: strings.TrimSpace(address)}
	if !e.Complete() {
		return nil
	}
	return e
}

// Complete is false for a nil receiver.
func (e *Employment) Complete() bool {
	return e != nil && strings.TrimSpace(e.EmployerName) != "" && strings.TrimSpace(e.EmployerAddress) != ""
}

// Customer is an account holder. Accounts is only filled when the customer is
// loaded from the store and is not refreshed after later mutations.
type Customer struct {
	ID         uint        `json:"id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Address    string      `json:"address"`
	Employment *Employment `json:"employment,omitempty"`
	Accounts   []Account   `json:"accounts"`
}

// NewCustomer keeps employment only when both employer fields are present.
func NewCustomer(id uint, firstName, lastName, address string, employment *Employment) *Customer {
	c := &Customer{ID: id, FirstName: firstName, LastName: lastName, Address: address}
	if employment.Complete() {
		e := *employment
		c.Employment = &e
	}
	return c
}

func (c *Customer) HasEmploymentInfo() bool {
	return c.Employment.Complete()
}

func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Account returns the loaded account with the given number, or nil.
func (c *Customer) Account(number string) *Account {
	for i := range c.Accounts {
		if c.Accounts[i].Number == number {
			return &c.Accounts[i]
		}
	}
	return nil
}

// TotalBalance sums the balances of the loaded accounts.
func (c *Customer) TotalBalance() float64 {
	var total float64
	for _, a := range c.Accounts {
		total += a.Balance
	}
	return total
}
