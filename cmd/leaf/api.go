package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Leaf server via HTTP.

These commands require a running server (leaf serve <document>).
Use --server to specify a custom server URL.

Examples:
  leaf api status               # Reading position and renderer state
  leaf api next                 # Advance one screen
  leaf api goto 12              # Jump to page 12
  leaf api layout mode single   # Switch to single-page layout
  leaf api screen -f out.png    # Save the current screen`,
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Screen layout commands",
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Render metrics commands",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Configuration settings commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func addCommands(parent *cobra.Command, eps []api.Endpoint) {
	for _, ep := range eps {
		if cmd := ep.Command(getServerURL); cmd != nil {
			parent.AddCommand(cmd)
		}
	}
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	// Navigation at top level of api
	addCommands(apiCmd, endpoints.NavigateCommands())

	addCommands(layoutCmd, endpoints.LayoutCommands())
	addCommands(metricsCmd, endpoints.MetricsCommands())
	addCommands(settingsCmd, endpoints.SettingsCommands())

	apiCmd.AddCommand(layoutCmd)
	apiCmd.AddCommand(metricsCmd)
	apiCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(apiCmd)
}
