package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dupliscan/dupliscan/internal/config"
)

// GetExplicitFlags returns the names of flags the user set on the command line
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicit := make(map[string]bool)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		explicit[f.Name] = true
	})
	return explicit
}

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory determines the output directory from configuration
func resolveOutputDirectory(configPath string) string {
	cfg, err := config.LoadConfig(configPath)
	if err == nil && cfg != nil && cfg.Output.Directory != "" {
		return cfg.Output.Directory
	}
	return "" // Empty means current directory
}

// generateOutputFilePath combines filename generation and directory resolution
func generateOutputFilePath(command, extension, configPath string) string {
	filename := generateTimestampedFileName(command, extension)
	outputDir := resolveOutputDirectory(configPath)

	if outputDir != "" {
		return filepath.Join(outputDir, filename)
	}
	return filename
}
