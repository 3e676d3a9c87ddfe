// Package cli implements bmsctl, the operator tool for the bank database.
package cli

import (
	"context"
	"fmt"
	"os"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bms/internal/config"
	"bms/internal/logger"
	"bms/internal/services"
	"bms/internal/store"
)

// Opener connects to the database and returns the services on top of it
// together with a function releasing the connection pool.
type Opener func(ctx context.Context) (*services.Services, func(), error)

// CreateCmd builds the root command. open is called lazily by each
// subcommand that needs the database.
func CreateCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "bmsctl",
		Short:        "bmsctl administers the banking record store",
		Long:         `bmsctl runs schema migration, sample data loading and maintenance tasks against the configured database.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		migrateCmd(open),
		seedCmd(open),
		addEmployeeCmd(open),
		deleteCustomerCmd(open),
		applyInterestCmd(open),
	)
	return root
}

// Execute runs bmsctl against the database named by the environment.
func Execute() {
	if err := CreateCmd(OpenFromEnv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// OpenFromEnv loads the configuration and opens and migrates the database.
func OpenFromEnv(ctx context.Context) (*services.Services, func(), error) {
	cfg := config.Load()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err == nil {
		logrus.SetLevel(level)
	}

	db, err := config.OpenDB(cfg, logger.GormLogger())
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closer := func() { sqlDB.Close() }

	if err := store.Migrate(ctx, db); err != nil {
		closer()
		return nil, nil, err
	}
	return services.New(store.New(db)), closer, nil
}

// withServices opens the database around fn.
func withServices(cmd *cobra.Command, open Opener, fn func(ctx context.Context, svc *services.Services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closer, err := open(ctx)
	if err != nil {
		return err
	}
	defer closer()
	return fn(ctx, svc)
}
