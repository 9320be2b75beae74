package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/config"
	"github.com/shiftscan/shiftscan/internal/home"
	"github.com/shiftscan/shiftscan/internal/server"
)

var (
	serveHost    string
	servePort    string
	serveWorkers int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the shiftscan server",
	Long: `Start the shiftscan HTTP server.

The server accepts schedule scan uploads, runs parse jobs on a worker pool
and keeps a local history of parse results.

Examples:
  shiftscan serve                    # Start on default port 8080
  shiftscan serve --port 3000        # Start on custom port
  shiftscan serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cfgMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		// Pick up config file edits without a restart.
		cfgMgr.WatchConfig()
		cfgMgr.OnChange(func(c *config.Config) {
			logger.Info("config reloaded", "target_name", c.TargetName)
		})

		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			Workers:       serveWorkers,
			Home:          h,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 0, "Parse worker count (default from config)")

	rootCmd.AddCommand(serveCmd)
}
