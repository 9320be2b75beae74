package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiftscan/shiftscan/internal/config"
	"github.com/shiftscan/shiftscan/internal/home"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the shiftscan home directory",
	Long: `Create the shiftscan home directory and write a default config file.

Examples:
  shiftscan init
  shiftscan init --home /tmp/shiftscan
  shiftscan init --force    # overwrite an existing config`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if h.ConfigExists() && !initForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", h.ConfigPath())
		}

		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}

		fmt.Printf("Initialized shiftscan home at %s\n", h.Path())
		fmt.Printf("Config written to %s\n", h.ConfigPath())
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
}
