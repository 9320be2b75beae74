package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/api"
	"github.com/shiftscan/shiftscan/internal/export"
	"github.com/shiftscan/shiftscan/internal/home"
	"github.com/shiftscan/shiftscan/internal/sample"
)

var demoRaw bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Export a built-in sample schedule",
	Long: `Run the export pipeline on a built-in sample schedule.

No OCR engine is needed. The sample result is written to the userdata
directory as CSV, JSON and XLSX, exactly as a real parse would be.

Examples:
  shiftscan demo
  shiftscan demo --raw    # also print the sample raw OCR dump`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		result := sample.Result()
		paths, err := export.WriteAll(h.UserdataPath(), result)
		if err != nil {
			return err
		}

		if err := api.Output(result); err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		}

		if demoRaw {
			fmt.Println(sample.RawText())
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().BoolVar(&demoRaw, "raw", false, "Print the sample raw OCR dump")

	rootCmd.AddCommand(demoCmd)
}
