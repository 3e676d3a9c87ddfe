package config

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bms/internal/store"
)

// OpenDB connects to the configured backend without migrating it.
func OpenDB(cfg Config, log gormlogger.Interface) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: log}
	switch cfg.DBDriver {
	case "postgres":
		return OpenPostgres(cfg.PostgresDSN(), gcfg)
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath, gcfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// OpenPostgres goes through lib/pq so driver errors surface as *pq.Error.
func OpenPostgres(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
}

// OpenSQLite opens a file database with foreign-key enforcement enabled, so
// the ON DELETE CASCADE rules hold.
func OpenSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// InitDB opens and migrates the database, exiting the process on failure.
func InitDB(ctx context.Context, cfg Config, log gormlogger.Interface) *gorm.DB {
	db, err := OpenDB(cfg, log)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := store.Migrate(ctx, db); err != nil {
		logrus.Fatalf("%v", err)
	}

	logrus.WithField("driver", cfg.DBDriver).Info("database ready")
	return db
}
