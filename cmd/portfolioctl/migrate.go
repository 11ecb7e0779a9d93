package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/database"
)

var errNoDatabaseURL = errors.New("DATABASE_URL is not set")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the portfolio tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		migrator, err := openMigrator(cmd)
		if err != nil {
			return err
		}
		defer migrator.Close()

		out := cmd.OutOrStdout()
		if dryRun {
			pending, err := migrator.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, "Schema is up to date.")
				return nil
			}
			fmt.Fprintln(out, "Pending: "+strings.Join(pending, ", "))
			return nil
		}

		applied, err := migrator.Run(cmd.Context())
		for _, name := range applied {
			fmt.Fprintln(out, okStyle.Render("Applied "+name))
		}
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(out, "Schema is up to date.")
		}
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for admin_settings.password",
	Long: "Print a bcrypt hash for admin_settings.password. With --store the hash is\n" +
		"written to admin_settings over DATABASE_URL instead of printed.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("store")

		var plain string
		if len(args) == 1 {
			plain = args[0]
		} else {
			err := huh.NewInput().
				Title("New admin password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password cannot be empty")
					}
					return nil
				}).
				Value(&plain).
				Run()
			if err != nil {
				return fmt.Errorf("password prompt cancelled")
			}
		}

		hash, err := admin.HashPassword(plain)
		if err != nil {
			return err
		}
		if !save {
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		}

		migrator, err := openMigrator(cmd)
		if err != nil {
			return err
		}
		defer migrator.Close()
		if err := migrator.SetAdminPassword(cmd.Context(), hash); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Admin password updated."))
		return nil
	},
}

// openMigrator is swapped in tests.
var openMigrator = func(cmd *cobra.Command) (*database.Migrator, error) {
	if cfg.DatabaseURL == "" {
		return nil, errNoDatabaseURL
	}
	return database.Open(cmd.Context(), cfg.DatabaseURL)
}

func init() {
	migrateCmd.Flags().Bool("dry-run", false, "list pending migrations without applying them")
	hashPasswordCmd.Flags().Bool("store", false, "write the hash to admin_settings")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}
