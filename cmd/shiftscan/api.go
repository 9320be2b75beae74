package main

import (
	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running shiftscan server via HTTP.

These commands require a running server (shiftscan serve).
Use --server to specify a custom server URL.

Examples:
  shiftscan api health                # Check server health
  shiftscan api parse schedule.png    # Upload a scan and queue a parse job
  shiftscan api jobs get <id>         # Get a specific job
  shiftscan api results latest        # Show the most recent parse result`,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Persistent so all subcommands inherit it
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	for _, ep := range endpoints.CommandEndpoints() {
		apiCmd.AddCommand(ep.Command(getServerURL))
	}

	rootCmd.AddCommand(apiCmd)
}
