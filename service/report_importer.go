package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dupliscan/dupliscan/domain"
)

// CSVReportImporter implements the domain.ReportImporter interface
type CSVReportImporter struct{}

// NewCSVReportImporter creates a new CSV report importer
func NewCSVReportImporter() *CSVReportImporter {
	return &CSVReportImporter{}
}

// ImportCSV reads a report produced by the CSV formatter and reconstructs
// the ordered clone record sequence.
//
// The header row is skipped; rows with fewer than 5 columns are skipped
// (MalformedReportRow), as are the blank row and metrics trailer. A row
// that fails to parse is logged and skipped; no row aborts the import.
func (imp *CSVReportImporter) ImportCSV(reader io.Reader) ([]domain.CloneRecord, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	records := []domain.CloneRecord{}
	rowNumber := 0

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.NewUnexpectedFailureError("failed to read report row", err)
		}
		rowNumber++

		if rowNumber == 1 {
			// Header row
			continue
		}
		if len(row) < 5 {
			// Blank separator, metrics trailer rows, or a malformed row
			continue
		}
		if isMetricsRow(row) {
			continue
		}

		record, err := parseRecordRow(row)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping report row %d: %v\n", rowNumber, err)
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// isMetricsRow recognizes the trailer rows appended after the records
func isMetricsRow(row []string) bool {
	first := strings.TrimSpace(row[0])
	return first == "Metrics" || strings.HasPrefix(first, "Total ")
}

// parseRecordRow parses one record row in the schema
// Clone Type, Line 1, Line 2, Similarity, File[, Recommendation]
func parseRecordRow(row []string) (domain.CloneRecord, error) {
	cloneType, err := domain.ParseCloneType(row[0])
	if err != nil {
		return domain.CloneRecord{}, err
	}

	lineA, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return domain.CloneRecord{}, fmt.Errorf("invalid first line number %q: %w", row[1], err)
	}

	lineB, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return domain.CloneRecord{}, fmt.Errorf("invalid second line number %q: %w", row[2], err)
	}

	similarity, err := parseSimilarityPercent(row[3])
	if err != nil {
		return domain.CloneRecord{}, err
	}

	record := domain.CloneRecord{
		Type:       cloneType,
		UnitID:     row[4],
		LineA:      lineA,
		LineB:      lineB,
		Similarity: similarity,
	}
	if len(row) > 5 {
		record.Recommendation = row[5]
	}

	return record, nil
}

// parseSimilarityPercent parses "87.50%" back into 0.875
func parseSimilarityPercent(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid similarity %q: %w", s, err)
	}
	return value / 100.0, nil
}
