package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dupliscan/dupliscan/domain"
)

// CSV report schema. Column order is part of the report contract: a file
// exported here must re-import into an equivalent record sequence.
var csvHeader = []string{"Clone Type", "Line 1", "Line 2", "Similarity", "File", "Recommendation"}

// CloneOutputFormatter implements the domain.CloneOutputFormatter
// interface. When constructed with a non-nil file reader, text output
// previews the cloned source lines read back from the unit files.
type CloneOutputFormatter struct {
	fileReader domain.FileReader
}

// NewCloneOutputFormatter creates a new clone output formatter.
// fileReader can be nil when source previews are not needed.
func NewCloneOutputFormatter(fileReader domain.FileReader) *CloneOutputFormatter {
	return &CloneOutputFormatter{fileReader: fileReader}
}

// FormatCloneResponse formats a clone response according to the specified format
func (f *CloneOutputFormatter) FormatCloneResponse(response *domain.CloneResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatAsText(response, writer, f.fileReader != nil)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.formatAsCSV(response, writer)
	case domain.OutputFormatPDF:
		return WritePDFReport(writer, response.Records)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// formatAsText formats the response as human-readable text
func (f *CloneOutputFormatter) formatAsText(response *domain.CloneResponse, writer io.Writer, showSource bool) error {
	if !response.Success {
		fmt.Fprintf(writer, "Clone detection failed: %s\n", response.Error)
		return nil
	}

	fmt.Fprintf(writer, "Clone Detection Results\n")
	fmt.Fprintf(writer, "=======================\n\n")

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files analyzed: %d\n", response.FilesAnalyzed)
	fmt.Fprintf(writer, "  Lines analyzed: %d\n", response.LinesAnalyzed)
	fmt.Fprintf(writer, "  Clones found: %d\n", response.Metrics.Total())
	fmt.Fprintf(writer, "  Analysis duration: %dms\n\n", response.Duration)

	fmt.Fprintf(writer, "Metrics:\n")
	fmt.Fprintf(writer, "  Exact (Type-1): %d\n", response.Metrics.Exact)
	fmt.Fprintf(writer, "  Renamed (Type-2): %d\n", response.Metrics.Renamed)
	fmt.Fprintf(writer, "  Modified (Type-3): %d\n\n", response.Metrics.Modified)

	if len(response.Records) == 0 {
		fmt.Fprintf(writer, "No clones detected.\n")
		return nil
	}

	fmt.Fprintf(writer, "Clones:\n")
	fmt.Fprintf(writer, "=======\n\n")

	for i := range response.Records {
		record := &response.Records[i]
		fmt.Fprintf(writer, "%d. %s\n", i+1, record.String())
		if record.Recommendation != "" {
			fmt.Fprintf(writer, "   Recommendation: %s\n", record.Recommendation)
		}
		if showSource {
			f.writeSourcePreview(writer, record)
		}
		fmt.Fprintf(writer, "\n")
	}

	return nil
}

// writeSourcePreview prints the two cloned lines read back from the unit's
// backing file. Missing files and stale line ranges are recoverable: the
// preview is replaced with the reason, the report itself is unaffected.
func (f *CloneOutputFormatter) writeSourcePreview(writer io.Writer, record *domain.CloneRecord) {
	if f.fileReader == nil {
		return
	}

	for _, lineNo := range []int{record.LineA, record.LineB} {
		lines, err := f.fileReader.ReadLineRange(record.UnitID, lineNo, lineNo)
		if err != nil {
			fmt.Fprintf(writer, "   %4d | (unavailable: %v)\n", lineNo, err)
			continue
		}
		fmt.Fprintf(writer, "   %4d | %s\n", lineNo, lines[0])
	}
}

// formatAsCSV writes the report CSV: one row per record, a blank row, a
// "Metrics" header row, then the three per-type totals.
func (f *CloneOutputFormatter) formatAsCSV(response *domain.CloneResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write(csvHeader); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for i := range response.Records {
		record := &response.Records[i]
		row := []string{
			record.Type.String(),
			strconv.Itoa(record.LineA),
			strconv.Itoa(record.LineB),
			record.SimilarityPercent(),
			record.UnitID,
			record.Recommendation,
		}
		if err := csvWriter.Write(row); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}

	rows := [][]string{
		{""},
		{"Metrics"},
		{"Total Exact Clones", strconv.Itoa(response.Metrics.Exact)},
		{"Total Renamed Clones", strconv.Itoa(response.Metrics.Renamed)},
		{"Total Modified Clones", strconv.Itoa(response.Metrics.Modified)},
	}
	for _, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return domain.NewOutputError("failed to write CSV metrics", err)
		}
	}

	return nil
}
