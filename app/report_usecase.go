package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dupliscan/dupliscan/domain"
)

// ReportUseCase re-imports previously exported reports and manages the
// marking store built on top of them.
type ReportUseCase struct {
	importer   domain.ReportImporter
	formatter  domain.CloneOutputFormatter
	marking    domain.MarkingStore
	fileReader domain.FileReader
}

// NewReportUseCase creates a new report use case
func NewReportUseCase(
	importer domain.ReportImporter,
	formatter domain.CloneOutputFormatter,
	marking domain.MarkingStore,
	fileReader domain.FileReader,
) *ReportUseCase {
	return &ReportUseCase{
		importer:   importer,
		formatter:  formatter,
		marking:    marking,
		fileReader: fileReader,
	}
}

// ImportReport reads a CSV report from path and returns its records in
// report order.
func (uc *ReportUseCase) ImportReport(path string) ([]domain.CloneRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewUnexpectedFailureError(fmt.Sprintf("failed to open report %s", path), err)
	}
	defer file.Close()

	records, err := uc.importer.ImportCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to import report: %w", err)
	}
	return records, nil
}

// DisplayRecords renders imported records through the formatter. Metrics
// are recomputed from the records so the display matches a fresh run.
func (uc *ReportUseCase) DisplayRecords(records []domain.CloneRecord, format domain.OutputFormat, writer io.Writer) error {
	response := &domain.CloneResponse{
		Records: records,
		Metrics: recomputeMetrics(records),
		Success: true,
	}
	return uc.formatter.FormatCloneResponse(response, format, writer)
}

// PreviewLines reads a 1-based inclusive line range from a source file.
// FileNotFound and LineRangeOutOfBounds come back as recoverable domain
// errors with the offending path and range.
func (uc *ReportUseCase) PreviewLines(path string, startLine, endLine int) ([]string, error) {
	return uc.fileReader.ReadLineRange(path, startLine, endLine)
}

// MarkRecord flags a record for follow-up
func (uc *ReportUseCase) MarkRecord(record domain.CloneRecord) {
	uc.marking.Mark(record)
}

// ListMarked returns the marked clones in marking order
func (uc *ReportUseCase) ListMarked() []domain.MarkedClone {
	return uc.marking.ListMarked()
}

// ClearMarked removes all marked clones
func (uc *ReportUseCase) ClearMarked() {
	uc.marking.ClearMarked()
}

// recomputeMetrics derives per-type counters from a record sequence
func recomputeMetrics(records []domain.CloneRecord) domain.RunMetrics {
	var metrics domain.RunMetrics
	for i := range records {
		metrics.Count(records[i].Type)
	}
	return metrics
}
