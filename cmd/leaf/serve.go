package main

import (
	"github.com/spf13/cobra"

	_ "github.com/jackzampolin/leaf/docs"
	"github.com/jackzampolin/leaf/internal/home"
	"github.com/jackzampolin/leaf/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve <document>",
	Short: "Open a document and start the Leaf server",
	Long: `Open a document and start the Leaf HTTP server.

The document is a PDF file or a directory of page images
(page_0001.png, page_0002.jpg, ...). Render workers start with the
server, and the reading position is saved to the home directory on
shutdown and restored the next time the same document is opened.

The config file is watched: edits to the viewport or layout section
are applied to the open document without a restart.

The server provides:
  - /          - Browser viewer (arrow keys to turn screens)
  - /api/...   - Navigation, layout, metrics and settings API
  - /swagger   - API documentation

Examples:
  leaf serve book.pdf                  # Start on the configured port
  leaf serve scans/ --port 3000        # Serve a page image directory
  leaf serve book.pdf --host 0.0.0.0   # Bind to all interfaces`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := loadConfig(h)
		if err != nil {
			return err
		}
		cfg := cm.Get()
		logger := newLogger(cfg)

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			DocumentPath:  args[0],
			ConfigManager: cm,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		cm.WatchConfig()

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
