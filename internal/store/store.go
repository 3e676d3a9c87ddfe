// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"bms/internal/models"
)

// Store maps the domain entities onto the relational tables. gorm hands out
// pooled connections per statement and releases them on every return path.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that manage its lifetime.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the four tables with their foreign keys.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&CustomerRecord{},
		&EmployeeRecord{},
		&UserRecord{},
		&AccountRecord{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}

func (s *Store) withContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// isUniqueViolation recognises duplicate-key failures from either backend.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// persistence tags a driver error as a store failure, keeping the cause.
func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, category := range []error{models.ErrPersistence, models.ErrDataIntegrity, models.ErrValidation} {
		if errors.Is(err, category) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", models.ErrPersistence, op, err)
}
