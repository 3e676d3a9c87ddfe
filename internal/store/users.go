// internal/store/users.go
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bms/internal/models"
)

// FindCredential returns the credential row for username, or (nil, nil).
// The username must match exactly.
func (s *Store) FindCredential(ctx context.Context, username string) (*models.Credential, error) {
	var rec UserRecord
	if err := s.withContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("find credential", err)
	}
	return toCredential(rec), nil
}

// CreateEmployee registers an employee and its credential atomically.
func (s *Store) CreateEmployee(ctx context.Context, e *models.Employee, cred *models.Credential) error {
	rec := EmployeeRecord{FirstName: e.FirstName, LastName: e.LastName, Email: e.Email, Role: e.Role}
	user := UserRecord{Username: cred.Username, PasswordHash: cred.PasswordHash}

	err := s.withContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return persistence("create employee", err)
		}
		user.EmployeeID = &rec.ID
		return createUser(tx, &user)
	})
	if err != nil {
		return persistence("register employee", err)
	}

	e.ID = rec.ID
	cred.ID = user.ID
	cred.EmployeeID = user.EmployeeID
	cred.CustomerID = nil
	return nil
}

// GetEmployee returns the employee with id, or (nil, nil).
func (s *Store) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	var rec EmployeeRecord
	if err := s.withContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("get employee", err)
	}
	return toEmployee(rec), nil
}

// ListEmployees returns all employees ordered by id.
func (s *Store) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	var rows []EmployeeRecord
	if err := s.withContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, persistence("list employees", err)
	}
	out := make([]*models.Employee, 0, len(rows))
	for _, r := range rows {
		out = append(out, toEmployee(r))
	}
	return out, nil
}
