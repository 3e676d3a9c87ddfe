// internal/store/records.go
package store

import (
	"fmt"
	"strings"

	"bms/internal/models"
)

// CustomerRecord is the customers table row. Deleting a customer removes its
// accounts and credential rows.
type CustomerRecord struct {
	ID              uint   `gorm:"primaryKey"`
	FirstName       string `gorm:"not null"`
	LastName        string `gorm:"not null"`
	Address         string
	EmployerName    *string
	EmployerAddress *string

	Accounts []AccountRecord `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Users    []UserRecord    `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (CustomerRecord) TableName() string { return "customers" }

type EmployeeRecord struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Role      string `gorm:"not null"`

	Users []UserRecord `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (EmployeeRecord) TableName() string { return "employees" }

// UserRecord is the credential row. The check keeps exactly one role link.
type UserRecord struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CustomerID   *uint  `gorm:"index;check:chk_users_single_link,(customer_id IS NULL) <> (employee_id IS NULL)"`
	EmployeeID   *uint  `gorm:"index"`
}

func (UserRecord) TableName() string { return "users" }

// AccountRecord is the flat accounts row; Type is the variant discriminator.
// account_number is indexed but deliberately not unique.
type AccountRecord struct {
	ID              uint    `gorm:"primaryKey"`
	AccountNumber   string  `gorm:"index;not null"`
	Balance         float64 `gorm:"not null"`
	Branch          string
	Type            string `gorm:"not null"`
	EmployerName    *string
	EmployerAddress *string
	CustomerID      uint `gorm:"index;not null"`
}

func (AccountRecord) TableName() string { return "accounts" }

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func employmentFrom(name, address *string) *models.Employment {
	return models.NewEmployment(deref(name), deref(address))
}

func toCustomer(r CustomerRecord) *models.Customer {
	return models.NewCustomer(r.ID, r.FirstName, r.LastName, r.Address, employmentFrom(r.EmployerName, r.EmployerAddress))
}

func fromCustomer(c *models.Customer) CustomerRecord {
	r := CustomerRecord{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Address: c.Address}
	if c.HasEmploymentInfo() {
		r.EmployerName = optional(c.Employment.EmployerName)
		r.EmployerAddress = optional(c.Employment.EmployerAddress)
	}
	return r
}

func toEmployee(r EmployeeRecord) *models.Employee {
	return &models.Employee{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Role: r.Role}
}

func toCredential(r UserRecord) *models.Credential {
	return &models.Credential{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CustomerID:   r.CustomerID,
		EmployeeID:   r.EmployeeID,
	}
}

// toAccount maps a row onto its variant. An unrecognised discriminator is a
// data-integrity error rather than a silently skipped row.
func toAccount(r AccountRecord) (models.Account, error) {
	kind := models.Kind(r.Type)
	if !kind.Valid() {
		return models.Account{}, fmt.Errorf("%w: %q in accounts row %d", models.ErrUnknownAccountKind, r.Type, r.ID)
	}
	a := models.Account{
		ID:         r.ID,
		Number:     r.AccountNumber,
		Balance:    r.Balance,
		Branch:     r.Branch,
		CustomerID: r.CustomerID,
		Kind:       kind,
	}
	if models.RequiresEmployment(kind) {
		a.Employer = employmentFrom(r.EmployerName, r.EmployerAddress)
		if a.Employer == nil {
			return models.Account{}, fmt.Errorf("%w: cheque account row %d has no employer", models.ErrDataIntegrity, r.ID)
		}
	}
	return a, nil
}

func fromAccount(a *models.Account) AccountRecord {
	r := AccountRecord{
		ID:            a.ID,
		AccountNumber: a.Number,
		Balance:       a.Balance,
		Branch:        a.Branch,
		Type:          string(a.Kind),
		CustomerID:    a.CustomerID,
	}
	if a.Employer != nil {
		r.EmployerName = optional(a.Employer.EmployerName)
		r.EmployerAddress = optional(a.Employer.EmployerAddress)
	}
	return r
}

func toAccounts(rows []AccountRecord) ([]models.Account, error) {
	out := make([]models.Account, 0, len(rows))
	for _, r := range rows {
		a, err := toAccount(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
