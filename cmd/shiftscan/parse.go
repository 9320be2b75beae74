package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/internal/config"
	"github.com/shiftscan/shiftscan/internal/home"
	"github.com/shiftscan/shiftscan/internal/ingest"
	"github.com/shiftscan/shiftscan/internal/jobs"
	"github.com/shiftscan/shiftscan/internal/server"
	"github.com/shiftscan/shiftscan/internal/store"
)

var (
	parseYear   int
	parseMonth  int
	parseEngine string
)

var parseCmd = &cobra.Command{
	Use:   "parse <scan-file>",
	Short: "Parse a schedule scan locally, without a server",
	Long: `Parse a scanned schedule image or PDF in-process.

The scan is OCR'd, the schedule table is reconstructed and the recovered
shifts are saved to the local history and exported to the userdata
directory as CSV, JSON and XLSX.

Examples:
  shiftscan parse schedule.png
  shiftscan parse schedule.pdf --year 2025 --month 12
  shiftscan parse schedule.png --engine vision`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		scanPath := args[0]

		if _, err := os.Stat(scanPath); err != nil {
			return fmt.Errorf("cannot read scan file: %w", err)
		}
		if !ingest.Supported(scanPath) {
			return fmt.Errorf("unsupported scan format: %s", filepath.Ext(scanPath))
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
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
		appCfg := cfgMgr.Get()
		if parseEngine != "" {
			override := *appCfg
			override.OCR.Engine = parseEngine
			appCfg = &override
		}

		recognizer, err := server.BuildRecognizer(appCfg)
		if err != nil {
			return err
		}

		st, err := store.Open(h.DatabasePath())
		if err != nil {
			return err
		}
		defer st.Close()

		year, month := parseYear, time.Month(parseMonth)
		if year == 0 {
			year = time.Now().Year()
		}
		if parseMonth == 0 {
			month = time.Now().Month()
		} else if parseMonth < 1 || parseMonth > 12 {
			return fmt.Errorf("invalid month: %d", parseMonth)
		}

		pipeline := &jobs.Pipeline{
			Recognizer: recognizer,
			Config:     cfgMgr,
			Home:       h,
			Store:      st,
			Logger:     logger,
		}

		outcome, err := pipeline.Run(ctx, filepath.Base(scanPath), scanPath, year, month)
		if err != nil {
			return err
		}

		if err := api.Output(outcome.Saved); err != nil {
			return err
		}
		for _, path := range outcome.Exports {
			fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().IntVar(&parseYear, "year", 0, "Schedule year (default: current year)")
	parseCmd.Flags().IntVar(&parseMonth, "month", 0, "Schedule month 1-12 (default: current month)")
	parseCmd.Flags().StringVar(&parseEngine, "engine", "", "OCR engine: tesseract or vision (default from config)")

	rootCmd.AddCommand(parseCmd)
}
