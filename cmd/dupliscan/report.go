package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dupliscan/dupliscan/app"
	"github.com/dupliscan/dupliscan/domain"
	"github.com/dupliscan/dupliscan/service"
)

// newReportUseCase wires the report use case with its service dependencies
func newReportUseCase() *app.ReportUseCase {
	fileReader := service.NewFileReader()
	return app.NewReportUseCase(
		service.NewCSVReportImporter(),
		service.NewCloneOutputFormatter(fileReader),
		markingStore,
		fileReader,
	)
}

// addReportCommand adds the report command group to the root command
func addReportCommand(rootCmd *cobra.Command) {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Work with previously exported clone reports",
	}

	reportCmd.AddCommand(newReportImportCommand())
	reportCmd.AddCommand(newReportViewCommand())
	rootCmd.AddCommand(reportCmd)
}

// newReportImportCommand builds the "report import" subcommand
func newReportImportCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "import <report.csv>",
		Short: "Re-import a CSV clone report and display it",
		Long: `Re-import a CSV report produced by "dupliscan detect --csv".

The header row is skipped and rows with fewer than five columns are
ignored; everything else is rebuilt into the original record sequence
with per-type metrics recomputed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := newReportUseCase()

			records, err := useCase.ImportReport(args[0])
			if err != nil {
				return err
			}

			format := domain.OutputFormatText
			if asJSON {
				format = domain.OutputFormatJSON
			}
			return useCase.DisplayRecords(records, format, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Display the imported report as JSON")
	return cmd
}

// newReportViewCommand builds the "report view" subcommand
func newReportViewCommand() *cobra.Command {
	var lineRange string

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "View a line range from a source file",
		Long: `View a 1-based inclusive line range from a source file, e.g. to inspect
the surroundings of a reported clone:

  dupliscan report view src/app.py --lines 12:20

A missing file or a range beyond the file's current length is reported
with the offending range so an alternate path or range can be supplied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startLine, endLine, err := parseLineRange(lineRange)
			if err != nil {
				return err
			}

			useCase := newReportUseCase()
			lines, err := useCase.PreviewLines(args[0], startLine, endLine)
			if err != nil {
				return err
			}

			for i, line := range lines {
				fmt.Fprintf(os.Stdout, "%4d | %s\n", startLine+i, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lineRange, "lines", "", "Line range to view, formatted start:end (required)")
	_ = cmd.MarkFlagRequired("lines")
	return cmd
}

// parseLineRange parses "12:20" into its two line numbers
func parseLineRange(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid line range %q, expected start:end", s)
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start line %q: %w", parts[0], err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end line %q: %w", parts[1], err)
	}

	return start, end, nil
}
