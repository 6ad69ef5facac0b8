package domain

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dupliscan/dupliscan/internal/constants"
)

// CloneType represents the similarity tier of a detected clone
type CloneType int

const (
	// Type1Clone - Exact duplicate lines (after normalization)
	Type1Clone CloneType = iota + 1
	// Type2Clone - Near-exact duplicates ("renamed")
	Type2Clone
	// Type3Clone - Loosely similar duplicates ("modified")
	Type3Clone
)

// String returns string representation of CloneType
func (ct CloneType) String() string {
	switch ct {
	case Type1Clone:
		return "Type-1"
	case Type2Clone:
		return "Type-2"
	case Type3Clone:
		return "Type-3"
	default:
		return "Unknown"
	}
}

// ParseCloneType parses a clone type from its string form.
// It accepts the report forms "Type-1" and "Type 1" as well as "type1".
func ParseCloneType(s string) (CloneType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	switch normalized {
	case "type1":
		return Type1Clone, nil
	case "type2":
		return Type2Clone, nil
	case "type3":
		return Type3Clone, nil
	default:
		return 0, NewInvalidInputError(fmt.Sprintf("unknown clone type: %q", s), nil)
	}
}

// CodeUnit is an identified, ordered sequence of raw source lines.
// Units are owned by the caller and only referenced during detection.
type CodeUnit struct {
	ID    string   `json:"id" yaml:"id"`
	Lines []string `json:"lines" yaml:"lines"`
}

// LineCount returns the number of raw lines in the unit
func (u *CodeUnit) LineCount() int {
	return len(u.Lines)
}

// CloneRecord is a single classified line pair. Line numbers are 1-based
// with LineA < LineB. Records are immutable once created.
type CloneRecord struct {
	Type           CloneType `json:"type" yaml:"type"`
	UnitID         string    `json:"unit_id" yaml:"unit_id"`
	LineA          int       `json:"line_a" yaml:"line_a"`
	LineB          int       `json:"line_b" yaml:"line_b"`
	Similarity     float64   `json:"similarity" yaml:"similarity"`
	Recommendation string    `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// String returns string representation of CloneRecord
func (r *CloneRecord) String() string {
	return fmt.Sprintf("%s: %s - Lines %d and %d (Similarity: %s)",
		r.Type.String(), r.UnitID, r.LineA, r.LineB, r.SimilarityPercent())
}

// SimilarityPercent formats the similarity as a percentage string with
// two decimal places and a trailing '%', e.g. "87.50%".
func (r *CloneRecord) SimilarityPercent() string {
	return FormatSimilarityPercent(r.Similarity)
}

// FormatSimilarityPercent formats a [0,1] similarity ratio as "87.50%".
func FormatSimilarityPercent(similarity float64) string {
	return fmt.Sprintf("%.2f%%", similarity*100)
}

// RunMetrics holds per-type counters for a single detection run.
// Counters are incremented exactly once per emitted record and belong to
// the run that produced them, never to shared process state.
type RunMetrics struct {
	Exact    int `json:"exact" yaml:"exact"`
	Renamed  int `json:"renamed" yaml:"renamed"`
	Modified int `json:"modified" yaml:"modified"`
}

// Total returns the total number of clone records counted
func (m *RunMetrics) Total() int {
	return m.Exact + m.Renamed + m.Modified
}

// Count increments the counter matching the given clone type
func (m *RunMetrics) Count(ct CloneType) {
	switch ct {
	case Type1Clone:
		m.Exact++
	case Type2Clone:
		m.Renamed++
	case Type3Clone:
		m.Modified++
	}
}

// MarkedClone is a clone record flagged by the user for follow-up.
// It carries a copy of the record fields, not a reference.
type MarkedClone struct {
	Record   CloneRecord `json:"record" yaml:"record"`
	MarkedAt time.Time   `json:"marked_at" yaml:"marked_at"`
}

// CloneRequest represents a request for clone detection
type CloneRequest struct {
	// Input parameters
	Paths           []string `json:"paths"`
	Recursive       bool     `json:"recursive"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`
	Extensions      []string `json:"extensions"`

	// Detection configuration. Sensitivity scales the three base
	// classification ratios and is snapshotted at run start.
	Sensitivity float64 `json:"sensitivity"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path,omitempty"`
	SortBy       SortCriteria `json:"sort_by"`
	ShowSource   bool         `json:"show_source"`

	// Configuration file
	ConfigPath string `json:"config_path,omitempty"`

	// Performance
	Timeout time.Duration `json:"timeout,omitempty"`
}

// Validate validates a clone request
func (req *CloneRequest) Validate() error {
	if len(req.Paths) == 0 {
		return NewValidationError("paths cannot be empty")
	}

	if req.Sensitivity <= 0.0 || req.Sensitivity > 1.0 {
		return NewValidationError("sensitivity must be in (0.0, 1.0]")
	}

	return nil
}

// HasValidOutputWriter checks if the request has a valid output writer
func (req *CloneRequest) HasValidOutputWriter() bool {
	return req.OutputWriter != nil
}

// DefaultCloneRequest returns a default clone request
func DefaultCloneRequest() *CloneRequest {
	return &CloneRequest{
		Paths:           []string{"."},
		Recursive:       true,
		IncludePatterns: []string{},
		ExcludePatterns: []string{},
		Extensions:      []string{".py", ".java"},
		Sensitivity:     constants.DefaultSensitivity,
		OutputFormat:    OutputFormatText,
		SortBy:          SortByLocation,
		ShowSource:      false,
	}
}

// CloneResponse represents the response from a clone detection run.
// Records preserve detection order: unit order, then first line, then
// second line, unless the request asked for a different sort.
type CloneResponse struct {
	Records []CloneRecord `json:"records" yaml:"records"`
	Metrics RunMetrics    `json:"metrics" yaml:"metrics"`

	// Metadata
	FilesAnalyzed int    `json:"files_analyzed" yaml:"files_analyzed"`
	LinesAnalyzed int    `json:"lines_analyzed" yaml:"lines_analyzed"`
	Duration      int64  `json:"duration_ms" yaml:"duration_ms"`
	Success       bool   `json:"success" yaml:"success"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

// CloneService defines the interface for clone detection services
type CloneService interface {
	// DetectClones performs clone detection on the units loaded from the request paths
	DetectClones(ctx context.Context, req *CloneRequest) (*CloneResponse, error)

	// DetectClonesInUnits performs clone detection on already-loaded code units
	DetectClonesInUnits(ctx context.Context, units []CodeUnit, req *CloneRequest) (*CloneResponse, error)

	// ComputeSimilarity computes the similarity ratio between two code fragments.
	// The boolean result is false when either fragment is empty after
	// normalization; such pairs are not comparable and carry no score.
	ComputeSimilarity(fragment1, fragment2 string) (float64, bool)
}

// CloneOutputFormatter defines the interface for formatting clone detection results
type CloneOutputFormatter interface {
	// FormatCloneResponse formats a clone response according to the specified format
	FormatCloneResponse(response *CloneResponse, format OutputFormat, writer io.Writer) error
}

// ReportImporter reconstructs clone records from a previously exported report
type ReportImporter interface {
	// ImportCSV reads a CSV report (schema per CloneOutputFormatter) and
	// rebuilds the ordered record sequence. Malformed rows are skipped.
	ImportCSV(reader io.Reader) ([]CloneRecord, error)
}

// CloneConfigurationLoader defines the interface for loading clone detection configuration
type CloneConfigurationLoader interface {
	// LoadCloneConfig loads clone detection configuration from file
	LoadCloneConfig(configPath string) (*CloneRequest, error)

	// SaveCloneConfig saves clone detection configuration to file
	SaveCloneConfig(config *CloneRequest, configPath string) error

	// GetDefaultCloneConfig returns default clone detection configuration
	GetDefaultCloneConfig() *CloneRequest
}

// FileReader abstracts source file discovery and loading
type FileReader interface {
	// CollectSourceFiles finds source files in the given paths
	CollectSourceFiles(paths []string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error)

	// LoadCodeUnits reads the collected files into ordered code units
	LoadCodeUnits(filePaths []string) ([]CodeUnit, error)

	// ReadLineRange reads lines [startLine, endLine] (1-based, inclusive)
	// from the file at path. Returns a FileNotFound error when the file is
	// missing and a LineRangeOutOfBounds error when the range exceeds the
	// file's current line count.
	ReadLineRange(path string, startLine, endLine int) ([]string, error)
}

// MarkingStore holds clone records flagged by the user for follow-up.
// Entries accumulate until explicitly cleared; marking the same record
// twice yields two entries.
type MarkingStore interface {
	// Mark appends a copy of the record to the store
	Mark(record CloneRecord)

	// ListMarked returns the marked clones in marking order
	ListMarked() []MarkedClone

	// ClearMarked removes all marked clones
	ClearMarked()
}
