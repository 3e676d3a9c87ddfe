package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bms/internal/services"
)

func migrateCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, open, func(context.Context, *services.Services) error {
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return nil
			})
		},
	}
}

func seedCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample customers, accounts and employees into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, open, func(ctx context.Context, svc *services.Services) error {
				seeded, err := svc.SeedSampleData(ctx)
				if err != nil {
					return err
				}
				if seeded {
					fmt.Fprintln(cmd.OutOrStdout(), "sample data loaded")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "store already has customers, nothing loaded")
				}
				return nil
			})
		},
	}
}

func addEmployeeCmd(open Opener) *cobra.Command {
	var in services.RegisterEmployeeInput
	cmd := &cobra.Command{
		Use:   "add-employee",
		Short: "Register a staff member with a login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, open, func(ctx context.Context, svc *services.Services) error {
				e, err := svc.Auth.RegisterEmployee(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "employee %d (%s, %s) registered as %s\n", e.ID, e.FullName(), e.Role, in.Username)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "first name")
	f.StringVar(&in.LastName, "last-name", "", "last name")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.Role, "role", "TELLER", "role, e.g. MANAGER or TELLER")
	f.StringVar(&in.Username, "username", "", "login name")
	f.StringVar(&in.Password, "password", "", "login password")
	for _, name := range []string{"first-name", "last-name", "email", "username", "password"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func deleteCustomerCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-customer USERNAME",
		Short: "Delete a customer with all accounts and logins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, open, func(ctx context.Context, svc *services.Services) error {
				deleted, err := svc.Customers.DeleteByUsername(ctx, args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("no customer with username %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "customer %s deleted\n", args[0])
				return nil
			})
		},
	}
}

func applyInterestCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-interest",
		Short: "Apply one month of interest to every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, open, func(ctx context.Context, svc *services.Services) error {
				n, err := svc.Accounts.ApplyInterestToAll(ctx)
				if err != nil {
					return fmt.Errorf("after %d accounts: %w", n, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "interest applied to %d accounts\n", n)
				return nil
			})
		},
	}
}
