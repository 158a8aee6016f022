package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront-admin/storefront-admin/internal/platform/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database schema",
	Long: `Apply every pending migration embedded in the binary. Running it against
an up-to-date database is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger().Debug("applying migrations")
		if err := db.RunMigrations(databaseURL()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
