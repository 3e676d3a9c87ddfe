// internal/store/accounts.go
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bms/internal/models"
)

// CreateAccount inserts a new row and sets a.ID from the generated key.
func (s *Store) CreateAccount(ctx context.Context, a *models.Account) error {
	return s.CreateAccountWithEmployment(ctx, a, nil)
}

// CreateAccountWithEmployment inserts a and, when employment is non-nil,
// saves it on the owning customer in the same transaction. Either both
// writes land or neither does.
func (s *Store) CreateAccountWithEmployment(ctx context.Context, a *models.Account, employment *models.Employment) error {
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownAccountKind, a.Kind)
	}
	rec := fromAccount(a)
	rec.ID = 0
	err := s.withContext(ctx).Transaction(func(tx *gorm.DB) error {
		if employment != nil {
			if err := updateEmployment(tx, a.CustomerID, *employment); err != nil {
				return err
			}
		}
		if err := tx.Create(&rec).Error; err != nil {
			return persistence("create account", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.ID = rec.ID
	return nil
}

// UpdateBalance writes a.Balance back to the row identified by a.ID.
func (s *Store) UpdateBalance(ctx context.Context, a *models.Account) error {
	res := s.withContext(ctx).
		Model(&AccountRecord{}).
		Where("id = ?", a.ID).
		Update("balance", a.Balance)
	if res.Error != nil {
		return persistence("update balance", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: update balance: account %d no longer exists", models.ErrPersistence, a.ID)
	}
	return nil
}

// GetAccountByNumber returns the oldest account with the given number, or
// (nil, nil) when none exists. Numbers are not guaranteed unique.
func (s *Store) GetAccountByNumber(ctx context.Context, number string) (*models.Account, error) {
	return s.firstAccount(s.withContext(ctx).Where("account_number = ?", number))
}

// GetCustomerAccount narrows the number lookup to one customer's accounts.
func (s *Store) GetCustomerAccount(ctx context.Context, customerID uint, number string) (*models.Account, error) {
	return s.firstAccount(s.withContext(ctx).Where("customer_id = ? AND account_number = ?", customerID, number))
}

func (s *Store) firstAccount(q *gorm.DB) (*models.Account, error) {
	var rec AccountRecord
	if err := q.Order("id").First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistence("get account", err)
	}
	a, err := toAccount(rec)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListCustomerAccounts loads every account owned by customerID.
func (s *Store) ListCustomerAccounts(ctx context.Context, customerID uint) ([]models.Account, error) {
	var rows []AccountRecord
	if err := s.withContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&rows).Error; err != nil {
		return nil, persistence("list accounts", err)
	}
	return toAccounts(rows)
}

// ListAccounts loads every account in the bank.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var rows []AccountRecord
	if err := s.withContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, persistence("list accounts", err)
	}
	return toAccounts(rows)
}
