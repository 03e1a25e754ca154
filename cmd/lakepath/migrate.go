package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakepath/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the catalog database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		db, err := openCatalog(cmd.Context(), cfg.Database, true)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "catalog table %s is ready (%s)\n", cfg.Database.Tables.Entries, cfg.Database.Type)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
