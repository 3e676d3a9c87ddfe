package services

import (
	"context"
	"fmt"
	"strings"

	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"bms/internal/models"
)

const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
)

// CredentialStore resolves login records and registers new principals.
type CredentialStore interface {
	FindCredential(ctx context.Context, username string) (*models.Credential, error)
	CreateCustomer(ctx context.Context, c *models.Customer, cred *models.Credential) error
	CreateEmployee(ctx context.Context, e *models.Employee, cred *models.Credential) error
	LoadCustomer(ctx context.Context, id uint) (*models.Customer, error)
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
}

// Principal is the authenticated party. Exactly one field is set.
type Principal struct {
	Customer *models.Customer `json:"customer,omitempty"`
	Employee *models.Employee `json:"employee,omitempty"`
}

func (p Principal) Role() string {
	if p.Employee != nil {
		return RoleEmployee
	}
	return RoleCustomer
}

func (p Principal) ID() uint {
	if p.Employee != nil {
		return p.Employee.ID
	}
	if p.Customer != nil {
		return p.Customer.ID
	}
	return 0
}

type AuthService struct {
	store CredentialStore
	cost  int
}

func NewAuthService(store CredentialStore) *AuthService {
	return &AuthService{store: store, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt work factor; tests use bcrypt.MinCost.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Authenticate matches username exactly and checks password against the
// stored bcrypt hash. Every failure, including a credential row that links
// to neither or both roles, surfaces as ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	if username == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}

	cred, err := s.store.FindCredential(ctx, username)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !cred.Linked() {
		logrus.WithError(models.ErrInvalidRoleLink).WithField("username", username).Warn("rejecting login")
		return nil, models.ErrInvalidCredentials
	}

	if cred.CustomerID != nil {
		c, err := s.store.LoadCustomer(ctx, *cred.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, models.ErrInvalidCredentials
		}
		return &Principal{Customer: c}, nil
	}

	e, err := s.store.GetEmployee(ctx, *cred.EmployeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, models.ErrInvalidCredentials
	}
	return &Principal{Employee: e}, nil
}

type RegisterCustomerInput struct {
	FirstName       string
	LastName        string
	Address         string
	EmployerName    string
	EmployerAddress string
	Username        string
	Password        string
}

// RegisterCustomer stores the customer and its login in one transaction.
// Partial employer details are dropped rather than rejected.
func (s *AuthService) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*models.Customer, error) {
	if err := required(
		field{"first_name", in.FirstName},
		field{"last_name", in.LastName},
		field{"username", in.Username},
		field{"password", in.Password},
	); err != nil {
		return nil, err
	}
	cred, err := s.newCredential(in.Username, in.Password)
	if err != nil {
		return nil, err
	}

	c := models.NewCustomer(0,
		strings.TrimSpace(in.FirstName),
		strings.TrimSpace(in.LastName),
		strings.TrimSpace(in.Address),
		models.NewEmployment(in.EmployerName, in.EmployerAddress),
	)
	if err := s.store.CreateCustomer(ctx, c, cred); err != nil {
		return nil, err
	}
	c.Accounts = []models.Account{}

	logrus.WithFields(logrus.Fields{
		"customer_id": c.ID,
		"username":    cred.Username,
	}).Info("customer registered")
	return c, nil
}

type RegisterEmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
	Username  string
	Password  string
}

func (s *AuthService) RegisterEmployee(ctx context.Context, in RegisterEmployeeInput) (*models.Employee, error) {
	if err := required(
		field{"first_name", in.FirstName},
		field{"last_name", in.LastName},
		field{"email", in.Email},
		field{"role", in.Role},
		field{"username", in.Username},
		field{"password", in.Password},
	); err != nil {
		return nil, err
	}
	cred, err := s.newCredential(in.Username, in.Password)
	if err != nil {
		return nil, err
	}

	e := &models.Employee{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Role:      strings.ToUpper(strings.TrimSpace(in.Role)),
	}
	if err := s.store.CreateEmployee(ctx, e, cred); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"employee_id": e.ID,
		"username":    cred.Username,
		"role":        e.Role,
	}).Info("employee registered")
	return e, nil
}

func (s *AuthService) newCredential(username, password string) (*models.Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &models.Credential{Username: strings.TrimSpace(username), PasswordHash: string(hash)}, nil
}

type field struct{ name, value string }

// required reports the first blank field.
func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", models.ErrMissingField, f.name)
		}
	}
	return nil
}
