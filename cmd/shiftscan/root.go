package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "shiftscan",
	Short: "Recover a personal work schedule from a scanned staff roster",
	Long: `Shiftscan reads a photographed or scanned staff schedule table and
recovers one employee's shifts as structured, time-stamped records.

The pipeline includes:
  - OCR with positioned text detections (Tesseract or an OpenAI vision model)
  - Geometric table reconstruction without ruling-line detection
  - Shift code mapping to concrete start/end timestamps
  - CSV, JSON and XLSX exports plus a local parse history`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.shiftscan/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "shiftscan home directory (default: ~/.shiftscan)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// A .env in the working directory supplies OPENAI_API_KEY and
		// friends during development; absence is not an error.
		_ = godotenv.Load()
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
