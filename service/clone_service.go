package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dupliscan/dupliscan/domain"
	"github.com/dupliscan/dupliscan/internal/analyzer"
)

// CloneService implements the domain.CloneService interface.
//
// Runs never overlap: a mutex serializes detection so each run's metrics
// are accumulated in isolation and published atomically with its records.
// The sensitivity is snapshotted into the detector at run start, so a
// concurrent settings change cannot reclassify pairs mid-run.
type CloneService struct {
	mu         sync.Mutex
	fileReader domain.FileReader
	progress   domain.ProgressManager
}

// NewCloneService creates a new clone service.
// progress can be nil - the service can work without progress reporting.
func NewCloneService(fileReader domain.FileReader, progress domain.ProgressManager) *CloneService {
	return &CloneService{
		fileReader: fileReader,
		progress:   progress,
	}
}

// DetectClones performs clone detection on the units loaded from the request paths
func (s *CloneService) DetectClones(ctx context.Context, req *domain.CloneRequest) (*domain.CloneResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("clone request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clone request: %w", err)
	}

	files, err := s.fileReader.CollectSourceFiles(req.Paths, req.Recursive, req.Extensions, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}

	units, err := s.fileReader.LoadCodeUnits(files)
	if err != nil {
		return nil, fmt.Errorf("failed to load code units: %w", err)
	}

	return s.DetectClonesInUnits(ctx, units, req)
}

// DetectClonesInUnits performs clone detection on already-loaded code units
func (s *CloneService) DetectClonesInUnits(ctx context.Context, units []domain.CodeUnit, req *domain.CloneRequest) (*domain.CloneResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("clone request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clone request: %w", err)
	}

	// One run at a time against this service
	s.mu.Lock()
	defer s.mu.Unlock()

	startTime := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if s.progress != nil {
		s.progress.Initialize(len(units))
		s.progress.Start()
	}

	detectorConfig := &analyzer.LineCloneDetectorConfig{
		Sensitivity: req.Sensitivity,
	}
	if s.progress != nil {
		detectorConfig.ProgressCallback = s.progress.Update
	}

	detector, err := analyzer.NewLineCloneDetector(detectorConfig)
	if err != nil {
		return nil, domain.NewAnalysisError("failed to create clone detector", err)
	}

	clones, totals, err := detector.DetectWithContext(ctx, s.convertUnits(units))
	if s.progress != nil {
		s.progress.Complete(err == nil)
	}
	if err != nil {
		return nil, domain.NewAnalysisError("clone detection cancelled", err)
	}

	records := s.convertClones(clones)
	s.sortRecords(records, req.SortBy)

	linesAnalyzed := 0
	for i := range units {
		linesAnalyzed += units[i].LineCount()
	}

	return &domain.CloneResponse{
		Records: records,
		Metrics: domain.RunMetrics{
			Exact:    totals.Exact,
			Renamed:  totals.Renamed,
			Modified: totals.Modified,
		},
		FilesAnalyzed: len(units),
		LinesAnalyzed: linesAnalyzed,
		Duration:      time.Since(startTime).Milliseconds(),
		Success:       true,
	}, nil
}

// ComputeSimilarity computes the similarity ratio between two normalized
// code fragments. The boolean result is false when either fragment is
// empty after normalization; such a pair is not comparable and the ratio
// carries no meaning.
func (s *CloneService) ComputeSimilarity(fragment1, fragment2 string) (float64, bool) {
	normalized1 := analyzer.Normalize(fragment1)
	normalized2 := analyzer.Normalize(fragment2)

	if normalized1 == "" || normalized2 == "" {
		return 0.0, false
	}

	return analyzer.Ratio(normalized1, normalized2), true
}

// convertUnits converts domain code units to analyzer source units.
// Line slices are shared, not copied; units are owned by the caller.
func (s *CloneService) convertUnits(units []domain.CodeUnit) []analyzer.SourceUnit {
	converted := make([]analyzer.SourceUnit, len(units))
	for i := range units {
		converted[i] = analyzer.SourceUnit{
			ID:    units[i].ID,
			Lines: units[i].Lines,
		}
	}
	return converted
}

// convertClones converts analyzer clones to domain records with their
// refactoring recommendations attached.
func (s *CloneService) convertClones(clones []*analyzer.LineClone) []domain.CloneRecord {
	records := make([]domain.CloneRecord, len(clones))
	for i, clone := range clones {
		records[i] = domain.CloneRecord{
			Type:           s.convertCloneType(clone.Type),
			UnitID:         clone.UnitID,
			LineA:          clone.LineA,
			LineB:          clone.LineB,
			Similarity:     clone.Similarity,
			Recommendation: analyzer.Recommend(clone),
		}
	}
	return records
}

// convertCloneType converts analyzer clone type to domain clone type
func (s *CloneService) convertCloneType(cloneType analyzer.CloneType) domain.CloneType {
	switch cloneType {
	case analyzer.Type1Clone:
		return domain.Type1Clone
	case analyzer.Type2Clone:
		return domain.Type2Clone
	case analyzer.Type3Clone:
		return domain.Type3Clone
	default:
		return domain.Type3Clone
	}
}

// sortRecords sorts records in place. Detection order (unit, first line,
// second line) is the contract default; other orders are stable so equal
// keys keep detection order.
func (s *CloneService) sortRecords(records []domain.CloneRecord, criteria domain.SortCriteria) {
	switch criteria {
	case domain.SortBySimilarity:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Similarity > records[j].Similarity
		})
	case domain.SortByType:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Type < records[j].Type
		})
	default:
		// SortByLocation: detection order already satisfies the contract
	}
}
