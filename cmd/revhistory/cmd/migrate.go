package cmd

import (
	"fmt"

	"revhistory/cmd/revhistory/cmd/types"
	"revhistory/internal/infrastructure/migration"
	"revhistory/internal/infrastructure/storage"

	"github.com/spf13/cobra"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Applies the SQL migrations from MIGRATIONS_PATH to the PostgreSQL database.
SQLite databases create their schema on open and need no migrations.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := types.Config(cmd.Context())
		log := types.Logger(cmd.Context())

		if storage.IsSQLite(cfg.DB.DatabaseURI) {
			log.Info("sqlite database, nothing to migrate")
			return nil
		}

		mg := migration.NewMigration(cfg.DB, migration.DefaultEngine, log)
		run := mg.Up
		if migrateDown {
			run = mg.Down
		}
		if err := run(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "roll back all migrations")
}
