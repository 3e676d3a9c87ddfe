// Package storetest opens throwaway SQLite stores for tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bms/internal/config"
	"bms/internal/store"
)

// Open returns a migrated store backed by a file in t.TempDir. The
// connection pool is closed when the test ends.
func Open(t testing.TB) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bank.db")
	db, err := config.OpenSQLite(path, &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := store.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}
