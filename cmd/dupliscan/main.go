package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dupliscan/dupliscan/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dupliscan",
		Short: "Line-level code clone detection",
		Long: `dupliscan detects duplicated and near-duplicated lines inside source
files and classifies them into three similarity tiers:

- Type-1: exact duplicates (after stripping comments, imports and blanks)
- Type-2: near-exact duplicates ("renamed")
- Type-3: loosely similar duplicates ("modified")

Reports can be written as text, CSV, JSON, YAML or PDF, and CSV reports
can be re-imported for review and marking.`,
		SilenceUsage: true,
	}

	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate(version.Info() + "\n")

	addDetectCommand(rootCmd)
	addReportCommand(rootCmd)
	addMarkCommand(rootCmd)
	addInitCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
