package main

import (
	"github.com/rusq/osenv/v2"
	"github.com/spf13/cobra"

	"yt-mcp/internal/mcpclient"
)

// version is set at build time via ldflags
var version = "dev"

var (
	apiURL string
	client *mcpclient.Client
)

var rootCmd = &cobra.Command{
	Use:   "ytmcp",
	Short: "Browse your YouTube subscriptions through MCP namespaces",
	Long: `ytmcp queries the subscriptions:// namespaces served by the backend.

Run without a subcommand for the interactive menu.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		client = mcpclient.New(apiURL)
	},
	RunE: runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", osenv.Value("MCP_API_URL", mcpclient.DefaultBaseURL), "backend base URL (env MCP_API_URL)")
}
