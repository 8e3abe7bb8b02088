package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/njchilds90/derivater/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP tool server",
		Long: `Serves the derivater tools over HTTP.

  POST /tool     execute a tool call
  GET  /schema   tool schema for agent registration
  GET  /health   health check
  GET  /metrics  Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.cfg, a.logger)
			if err := srv.Run(ctx); err != nil {
				a.logger.Error("server failed", zap.Error(err))
				return err
			}
			a.logger.Info("server stopped gracefully")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on (overrides server.addr)")
	return cmd
}
