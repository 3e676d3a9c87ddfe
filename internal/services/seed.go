package services

import (
	"context"
	"fmt"

	logrus "github.com/sirupsen/logrus"

	"bms/internal/models"
)

type seedAccount struct {
	kind    models.Kind
	number  string
	balance float64
	branch  string
}

type seedCustomer struct {
	in       RegisterCustomerInput
	accounts []seedAccount
}

var sampleCustomers = []seedCustomer{
	{
		in: RegisterCustomerInput{FirstName: "Katlego", LastName: "Sekgoma", Address: "Gaborone",
			EmployerName: "Acme Corp", EmployerAddress: "Gaborone", Username: "customer1", Password: "1234"},
		accounts: []seedAccount{
			{models.KindCheque, "CHK-001", 1200, "Main"},
			{models.KindInvestment, "INV-001", 1500, "Main"},
			{models.KindSavings, "SAV-001", 300, "Main"},
		},
	},
	{
		in: RegisterCustomerInput{FirstName: "Alice", LastName: "Moloi", Address: "Francistown",
			Username: "customer2", Password: "1234"},
		accounts: []seedAccount{
			{models.KindInvestment, "INV-002", 800, "North"},
			{models.KindSavings, "SAV-002", 250, "North"},
		},
	},
	{
		in: RegisterCustomerInput{FirstName: "Brian", LastName: "Kgosietsile", Address: "Maun",
			EmployerName: "Botswana Ltd", EmployerAddress: "Maun", Username: "customer3", Password: "1234"},
		accounts: []seedAccount{
			{models.KindCheque, "CHK-002", 500, "West"},
			{models.KindInvestment, "INV-003", 700, "West"},
		},
	},
	{
		in: RegisterCustomerInput{FirstName: "Dineo", LastName: "Modise", Address: "Gaborone",
			EmployerName: "SmallBiz Pty", EmployerAddress: "Gaborone", Username: "customer4", Password: "1234"},
		accounts: []seedAccount{
			{models.KindSavings, "SAV-003", 150, "Main"},
			{models.KindCheque, "CHK-003", 400, "Main"},
		},
	},
}

var sampleEmployees = []RegisterEmployeeInput{
	{FirstName: "John", LastName: "Manager", Email: "john.manager@bank.com", Role: "MANAGER",
		Username: "employee1", Password: "emp123"},
	{FirstName: "Sarah", LastName: "Teller", Email: "sarah.teller@bank.com", Role: "TELLER",
		Username: "admin", Password: "admin123"},
}

// SeedSampleData loads the demo customers, accounts and staff when the
// store has no customers yet. It reports whether anything was written.
// Cheque accounts take the employer stored on the customer.
func (s *Services) SeedSampleData(ctx context.Context) (bool, error) {
	n, err := s.Customers.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		logrus.WithField("customers", n).Info("store not empty, skipping sample data")
		return false, nil
	}

	var opened int
	for _, sc := range sampleCustomers {
		c, err := s.Auth.RegisterCustomer(ctx, sc.in)
		if err != nil {
			return false, fmt.Errorf("seed customer %s: %w", sc.in.Username, err)
		}
		for _, sa := range sc.accounts {
			_, err := s.Accounts.OpenAccount(ctx, OpenAccountInput{
				CustomerID:     c.ID,
				Kind:           string(sa.kind),
				Number:         sa.number,
				InitialDeposit: sa.balance,
				Branch:         sa.branch,
			})
			if err != nil {
				return false, fmt.Errorf("seed account %s: %w", sa.number, err)
			}
			opened++
		}
	}
	for _, in := range sampleEmployees {
		if _, err := s.Auth.RegisterEmployee(ctx, in); err != nil {
			return false, fmt.Errorf("seed employee %s: %w", in.Username, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"customers": len(sampleCustomers),
		"accounts":  opened,
		"employees": len(sampleEmployees),
	}).Info("sample data loaded")
	return true, nil
}
