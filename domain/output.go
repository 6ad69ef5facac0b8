package domain

import (
	"io"
)

// OutputFormat defines the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatPDF  OutputFormat = "pdf"
)

// SortCriteria defines how to sort clone records
type SortCriteria string

const (
	// SortByLocation preserves detection order: unit, then first line, then second line
	SortByLocation   SortCriteria = "location"
	SortBySimilarity SortCriteria = "similarity"
	SortByType       SortCriteria = "type"
)

// ReportWriter abstracts writing reports to a destination (file or writer).
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write writes formatted content using the provided writeFunc.
	// - If outputPath is non-empty, implementations should create/truncate the
	//   file at that path and pass the file as the writer to writeFunc.
	// - If outputPath is empty, implementations should pass the provided writer
	//   to writeFunc.
	Write(writer io.Writer, outputPath string, format OutputFormat, writeFunc func(io.Writer) error) error
}

// ProgressManager manages progress tracking for a detection run
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}
