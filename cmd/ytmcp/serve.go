package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"yt-mcp/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server (stdio mode)",
	Long: `Start a Model Context Protocol server on stdin/stdout.

Every namespace the backend serves becomes an MCP resource, and the
query_namespace tool reads them with parameters.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// stdout carries the protocol; log to stderr.
	lg := slog.New(slog.NewTextHandler(os.Stderr, nil))

	namespaces, err := client.Namespaces(ctx)
	if err != nil {
		return err
	}

	server, err := mcpserver.NewServer(client, namespaces, version, lg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}
