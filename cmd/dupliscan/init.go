package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dupliscan/dupliscan/internal/config"
)

// addInitCommand adds the init command to the root command
func addInitCommand(rootCmd *cobra.Command) {
	var output string
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file to the current directory.

The file records the detection sensitivity, input discovery settings and
output preferences, and is picked up automatically by later runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}

			if err := config.SaveConfig(config.DefaultConfig(), output); err != nil {
				return fmt.Errorf("failed to write configuration: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Configuration written to %s\n", output)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&output, "output", "o", ".dupliscan.toml", "Configuration file to write")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)
}
