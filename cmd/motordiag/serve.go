package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"motordiag/internal/api"
	"motordiag/internal/config"
	"motordiag/internal/logging"
	"motordiag/internal/publish"
	"motordiag/internal/results"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diagnosis HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewManager(config.ResolvePath(configPath))
			if err != nil {
				return err
			}
			cfg := mgr.Get()
			logger := logging.NewLogger(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store := results.NewStore(cfg.Results.StoreLimit)
			publisher := publish.New(cfg.Publish, logger)
			defer publisher.Close()
			server := api.Start(ctx, mgr, store, publisher, logger, version)

			watchStop := make(chan struct{})
			go mgr.Watch(3*time.Second,
				func(next *config.Config) {
					logger.Info("config reloaded", "path", mgr.Path())
				},
				func(err error) {
					logger.Warn("config reload failed", "err", err)
				},
				watchStop,
			)

			<-ctx.Done()
			close(watchStop)
			if server != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}
			logger.Info("shutdown complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "motordiag.yaml", "path to the service config file")
	return cmd
}
