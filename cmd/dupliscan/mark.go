package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dupliscan/dupliscan/service"
)

// markingStore is shared across the commands of one invocation. Marks
// accumulate until cleared explicitly; they are never pruned.
var markingStore = service.NewMarkingStore()

// addMarkCommand adds the mark command group to the root command
func addMarkCommand(rootCmd *cobra.Command) {
	markCmd := &cobra.Command{
		Use:   "mark",
		Short: "Flag clones from a report for follow-up",
	}

	markCmd.AddCommand(newMarkAddCommand())
	markCmd.AddCommand(newMarkListCommand())
	markCmd.AddCommand(newMarkClearCommand())
	rootCmd.AddCommand(markCmd)
}

// newMarkAddCommand builds the "mark add" subcommand
func newMarkAddCommand() *cobra.Command {
	var row int

	cmd := &cobra.Command{
		Use:   "add <report.csv>",
		Short: "Mark a clone record from an imported report",
		Long: `Mark the clone at the given record position (1-based, in report order)
of a CSV report. Marking the same record twice yields two entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useCase := newReportUseCase()

			records, err := useCase.ImportReport(args[0])
			if err != nil {
				return err
			}

			if row < 1 || row > len(records) {
				return fmt.Errorf("record %d out of range, report has %d records", row, len(records))
			}

			record := records[row-1]
			useCase.MarkRecord(record)
			fmt.Fprintf(os.Stdout, "Marked: %s\n", record.String())
			return nil
		},
	}

	cmd.Flags().IntVar(&row, "record", 1, "1-based record position in the report")
	return cmd
}

// newMarkListCommand builds the "mark list" subcommand
func newMarkListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List marked clones in marking order",
		RunE: func(cmd *cobra.Command, args []string) error {
			marked := newReportUseCase().ListMarked()
			if len(marked) == 0 {
				fmt.Fprintln(os.Stdout, "No clones marked.")
				return nil
			}

			for i, m := range marked {
				fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, m.Record.String())
				if m.Record.Recommendation != "" {
					fmt.Fprintf(os.Stdout, "   Recommendation: %s\n", m.Record.Recommendation)
				}
			}
			return nil
		},
	}
}

// newMarkClearCommand builds the "mark clear" subcommand
func newMarkClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all marked clones",
		RunE: func(cmd *cobra.Command, args []string) error {
			newReportUseCase().ClearMarked()
			fmt.Fprintln(os.Stdout, "Cleared marked clones.")
			return nil
		},
	}
}
