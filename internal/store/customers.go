// internal/store/customers.go
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bms/internal/models"
)

// CreateCustomer registers a customer together with its credential row.
// Both inserts share one transaction; if the credential insert fails the
// customer row is rolled back as well.
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer, cred *models.Credential) error {
	tx := s.withContext(ctx).Begin()
	if tx.Error != nil {
		return persistence("begin registration", tx.Error)
	}

	rec := fromCustomer(c)
	rec.ID = 0
	if err := tx.Create(&rec).Error; err != nil {
		tx.Rollback()
		return persistence("create customer", err)
	}

	user := UserRecord{Username: cred.Username, PasswordHash: cred.PasswordHash, CustomerID: &rec.ID}
	if err := createUser(tx, &user); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return persistence("commit registration", err)
	}

	c.ID = rec.ID
	cred.ID = user.ID
	cred.CustomerID = user.CustomerID
	cred.EmployeeID = nil
	return nil
}

func createUser(tx *gorm.DB, user *UserRecord) error {
	if err := tx.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", models.ErrDuplicateUsername, user.Username)
		}
		return persistence("create user", err)
	}
	return nil
}

// LoadCustomer loads a customer and all of its accounts, or (nil, nil).
func (s *Store) LoadCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var rec CustomerRecord
	if err := s.withContext(ctx).Preload("Accounts", orderByID).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("get customer", err)
	}
	return hydrate(rec)
}

// ListCustomers loads every customer with accounts, ordered by id.
func (s *Store) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	var rows []CustomerRecord
	if err := s.withContext(ctx).Preload("Accounts", orderByID).Order("id").Find(&rows).Error; err != nil {
		return nil, persistence("list customers", err)
	}
	out := make([]*models.Customer, 0, len(rows))
	for _, rec := range rows {
		c, err := hydrate(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.withContext(ctx).Model(&CustomerRecord{}).Count(&n).Error; err != nil {
		return 0, persistence("count customers", err)
	}
	return n, nil
}

// UpdateEmployment stores employer details on an existing customer.
func (s *Store) UpdateEmployment(ctx context.Context, customerID uint, e models.Employment) error {
	return updateEmployment(s.withContext(ctx), customerID, e)
}

func updateEmployment(tx *gorm.DB, customerID uint, e models.Employment) error {
	res := tx.
		Model(&CustomerRecord{}).
		Where("id = ?", customerID).
		Updates(map[string]any{
			"employer_name":    e.EmployerName,
			"employer_address": e.EmployerAddress,
		})
	if res.Error != nil {
		return persistence("update employment", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrCustomerNotFound
	}
	return nil
}

// DeleteCustomer removes the customer, its accounts and its credentials.
// It reports false when no such customer exists.
func (s *Store) DeleteCustomer(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.withContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&AccountRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&UserRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&CustomerRecord{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, persistence("delete customer", err)
	}
	return deleted, nil
}

// DeleteCustomerByUsername resolves a customer credential and deletes the
// customer it links to.
func (s *Store) DeleteCustomerByUsername(ctx context.Context, username string) (bool, error) {
	cred, err := s.FindCredential(ctx, username)
	if err != nil || cred == nil || cred.CustomerID == nil {
		return false, err
	}
	return s.DeleteCustomer(ctx, *cred.CustomerID)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func hydrate(rec CustomerRecord) (*models.Customer, error) {
	c := toCustomer(rec)
	accounts, err := toAccounts(rec.Accounts)
	if err != nil {
		return nil, err
	}
	c.Accounts = accounts
	return c, nil
}
