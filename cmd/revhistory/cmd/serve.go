package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"revhistory/cmd/revhistory/cmd/types"
	"revhistory/internal/app/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := types.Config(cmd.Context())
		log := types.Logger(cmd.Context())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("init app: %w", err)
		}
		defer func() {
			if err := app.Close(); err != nil {
				log.Error("close storage", "error", err)
			}
		}()

		return app.Run(ctx)
	},
}
