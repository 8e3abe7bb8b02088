package main

import (
	"strings"

	"github.com/njchilds90/derivater/internal/mcpserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server on stdio",
		Long: `Serves every derivater tool as an MCP tool over standard input/output.
Expression parameters are passed as JSON-encoded strings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs go to stderr so they don't corrupt JSON-RPC on stdout.
			a.logger.Info("starting derivater MCP server (stdio)")
			srv := mcpserver.New(strings.TrimSpace(version), a.logger)
			if err := srv.ServeStdio(); err != nil {
				a.logger.Error("MCP server execution failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
