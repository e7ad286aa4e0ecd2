package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"yt-mcp/internal/cli"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive namespace browser",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return cli.NewMenu(client, cmd.OutOrStdout()).Run(ctx)
}
