package cmd

import (
	"context"
	"fmt"
	"os"

	"revhistory/cmd/revhistory/cmd/account"
	"revhistory/cmd/revhistory/cmd/types"
	"revhistory/internal/app/server/config"
	"revhistory/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var entityTypesFile string

var rootCmd = &cobra.Command{
	Use:   "revhistory",
	Short: "Revision history service for typed records",
	Long: `revhistory serves the version history and single revision pages of
revisionable records. Routes are derived from the link templates declared in
the entity types file.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg := config.MustLoad()
	if entityTypesFile != "" {
		cfg.EntityTypes.File = entityTypesFile
	}

	log := logger.New(cfg.Env)
	cmd.SetContext(types.WithRuntime(cmd.Context(), cfg, log))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&entityTypesFile, "entity-types", "", "entity types file (overrides ENTITY_TYPES_FILE)")
	rootCmd.PersistentFlags().String("database-uri", "", "database URI (overrides DATABASE_URI)")
	_ = viper.BindPFlag("database_uri", rootCmd.PersistentFlags().Lookup("database-uri"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(account.AccountCmd)
}
