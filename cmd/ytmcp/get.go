package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yt-mcp/internal/cli"
	"yt-mcp/internal/mcp"
)

var getTable bool

var getCmd = &cobra.Command{
	Use:   "get <namespace> [key=value...]",
	Short: "Print the payload of one namespace",
	Example: `  ytmcp get subscriptions://channels
  ytmcp get subscriptions://recent-videos limit=5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVarP(&getTable, "table", "t", false, "render as a table instead of JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	q, err := parseQuery(args[1:])
	if err != nil {
		return err
	}

	data, err := client.Query(cmd.Context(), args[0], q)
	if err != nil {
		return err
	}

	var out string
	if getTable {
		out, err = cli.Render(args[0], data)
	} else {
		out, err = cli.Indent(data)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func parseQuery(pairs []string) (mcp.Query, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	q := make(mcp.Query, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid query parameter %q, want key=value", p)
		}
		q[k] = v
	}
	return q, nil
}
