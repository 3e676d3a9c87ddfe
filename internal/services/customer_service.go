package services

import (
	"context"

	logrus "github.com/sirupsen/logrus"

	"bms/internal/models"
)

// Directory is the read and delete surface over customers and employees.
type Directory interface {
	LoadCustomer(ctx context.Context, id uint) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	CountCustomers(ctx context.Context) (int64, error)
	DeleteCustomer(ctx context.Context, id uint) (bool, error)
	DeleteCustomerByUsername(ctx context.Context, username string) (bool, error)
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
}

type CustomerService struct {
	dir Directory
}

func NewCustomerService(dir Directory) *CustomerService {
	return &CustomerService{dir: dir}
}

// Get returns the customer with accounts loaded, or (nil, nil).
func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.dir.LoadCustomer(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]*models.Customer, error) {
	return s.dir.ListCustomers(ctx)
}

func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	return s.dir.CountCustomers(ctx)
}

// Delete removes the customer with its accounts and login. It reports false
// when nothing matched.
func (s *CustomerService) Delete(ctx context.Context, id uint) (bool, error) {
	ok, err := s.dir.DeleteCustomer(ctx, id)
	if err == nil && ok {
		logrus.WithField("customer_id", id).Info("customer deleted")
	}
	return ok, err
}

func (s *CustomerService) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	ok, err := s.dir.DeleteCustomerByUsername(ctx, username)
	if err == nil && ok {
		logrus.WithField("username", username).Info("customer deleted")
	}
	return ok, err
}

func (s *CustomerService) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	return s.dir.GetEmployee(ctx, id)
}

func (s *CustomerService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return s.dir.ListEmployees(ctx)
}
