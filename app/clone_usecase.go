package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dupliscan/dupliscan/domain"
)

// CloneUseCase orchestrates clone detection operations
type CloneUseCase struct {
	service      domain.CloneService
	fileReader   domain.FileReader
	formatter    domain.CloneOutputFormatter
	configLoader domain.CloneConfigurationLoader
	reportWriter domain.ReportWriter
}

// NewCloneUseCase creates a new clone use case with the given dependencies
func NewCloneUseCase(
	service domain.CloneService,
	fileReader domain.FileReader,
	formatter domain.CloneOutputFormatter,
	configLoader domain.CloneConfigurationLoader,
	reportWriter domain.ReportWriter,
) *CloneUseCase {
	return &CloneUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		reportWriter: reportWriter,
	}
}

// Execute executes the clone detection use case
func (uc *CloneUseCase) Execute(ctx context.Context, req domain.CloneRequest) error {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	response, err := uc.service.DetectClones(ctx, &req)
	if err != nil {
		return fmt.Errorf("clone detection failed: %w", err)
	}

	response.Duration = time.Since(startTime).Milliseconds()

	return uc.writeResponse(response, &req)
}

// ExecuteWithUnits executes clone detection on already-loaded code units
func (uc *CloneUseCase) ExecuteWithUnits(ctx context.Context, units []domain.CodeUnit, req domain.CloneRequest) error {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if len(units) == 0 {
		return uc.writeResponse(emptyResponse(), &req)
	}

	response, err := uc.service.DetectClonesInUnits(ctx, units, &req)
	if err != nil {
		return fmt.Errorf("clone detection failed: %w", err)
	}

	response.Duration = time.Since(startTime).Milliseconds()

	return uc.writeResponse(response, &req)
}

// Detect runs detection and returns the response without formatting it.
// Used by surfaces that render results themselves (MCP).
func (uc *CloneUseCase) Detect(ctx context.Context, req domain.CloneRequest) (*domain.CloneResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return uc.service.DetectClones(ctx, &req)
}

// ComputeFragmentSimilarity computes similarity between two code fragments.
// The boolean result is false when the pair is not comparable.
func (uc *CloneUseCase) ComputeFragmentSimilarity(fragment1, fragment2 string) (float64, bool) {
	return uc.service.ComputeSimilarity(fragment1, fragment2)
}

// SaveConfiguration saves the current clone detection configuration
func (uc *CloneUseCase) SaveConfiguration(req domain.CloneRequest, configPath string) error {
	if err := uc.configLoader.SaveCloneConfig(&req, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// writeResponse formats the response and routes it to the configured destination
func (uc *CloneUseCase) writeResponse(response *domain.CloneResponse, req *domain.CloneRequest) error {
	if !req.HasValidOutputWriter() && req.OutputPath == "" {
		return fmt.Errorf("no valid output destination specified")
	}

	return uc.reportWriter.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.FormatCloneResponse(response, req.OutputFormat, w)
	})
}

func emptyResponse() *domain.CloneResponse {
	return &domain.CloneResponse{
		Records: []domain.CloneRecord{},
		Success: true,
	}
}

// CloneUseCaseBuilder helps build CloneUseCase with dependencies
type CloneUseCaseBuilder struct {
	service      domain.CloneService
	fileReader   domain.FileReader
	formatter    domain.CloneOutputFormatter
	configLoader domain.CloneConfigurationLoader
	reportWriter domain.ReportWriter
}

// NewCloneUseCaseBuilder creates a new builder for CloneUseCase
func NewCloneUseCaseBuilder() *CloneUseCaseBuilder {
	return &CloneUseCaseBuilder{}
}

// WithService sets the clone service
func (b *CloneUseCaseBuilder) WithService(service domain.CloneService) *CloneUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *CloneUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *CloneUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *CloneUseCaseBuilder) WithFormatter(formatter domain.CloneOutputFormatter) *CloneUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CloneUseCaseBuilder) WithConfigLoader(configLoader domain.CloneConfigurationLoader) *CloneUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithReportWriter sets the report writer
func (b *CloneUseCaseBuilder) WithReportWriter(reportWriter domain.ReportWriter) *CloneUseCaseBuilder {
	b.reportWriter = reportWriter
	return b
}

// Build creates the CloneUseCase with the configured dependencies
func (b *CloneUseCaseBuilder) Build() (*CloneUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("clone service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	if b.configLoader == nil {
		return nil, fmt.Errorf("configuration loader is required")
	}
	if b.reportWriter == nil {
		return nil, fmt.Errorf("report writer is required")
	}

	return NewCloneUseCase(
		b.service,
		b.fileReader,
		b.formatter,
		b.configLoader,
		b.reportWriter,
	), nil
}
