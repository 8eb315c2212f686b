package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chiku1101/druggs/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg.Logging)

		analyzer, store, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := api.NewServer(cfg.Server.Address, analyzer, store, logger)
		return server.Run(ctx, cfg.Server.ShutdownTimeout())
	},
}
