package analyzer

import (
	"context"
	"fmt"
)

// SourceUnit is an identified, ordered sequence of raw source lines.
// Units are referenced, never copied, for the duration of a run.
type SourceUnit struct {
	ID    string
	Lines []string
}

// LineClone is a classified line pair within one unit. Line numbers are
// 1-based with LineA < LineB.
type LineClone struct {
	Type       CloneType
	UnitID     string
	LineA      int
	LineB      int
	Similarity float64
}

// String returns string representation of LineClone
func (lc *LineClone) String() string {
	return fmt.Sprintf("%s clone: %s lines %d/%d (similarity: %.3f)",
		lc.Type.String(), lc.UnitID, lc.LineA, lc.LineB, lc.Similarity)
}

// RunTotals counts emitted clones per tier for a single run
type RunTotals struct {
	Exact    int
	Renamed  int
	Modified int
}

// count increments the counter matching the given clone type
func (t *RunTotals) count(ct CloneType) {
	switch ct {
	case Type1Clone:
		t.Exact++
	case Type2Clone:
		t.Renamed++
	case Type3Clone:
		t.Modified++
	}
}

// ComparisonPredicate decides whether two raw lines stand in a particular
// relation (renamed, modified) independent of their similarity ratio.
type ComparisonPredicate func(line1, line2 string) bool

// neverMatches is the default predicate: structural comparisons are
// unimplemented and must behave as no-ops.
func neverMatches(line1, line2 string) bool {
	return false
}

// LineCloneDetectorConfig configures a detector for one run
type LineCloneDetectorConfig struct {
	// Sensitivity scales the three base classification ratios.
	Sensitivity float64

	// IsRenamed may classify a below-cutoff pair as Type-2 regardless of
	// its similarity ratio. Nil means never.
	IsRenamed ComparisonPredicate

	// IsModified may classify a below-cutoff pair as Type-3 regardless of
	// its similarity ratio. Nil means never.
	IsModified ComparisonPredicate

	// ProgressCallback, when non-nil, is invoked after each unit with the
	// number of units processed so far and the total.
	ProgressCallback func(processed, total int)
}

// LineCloneDetector enumerates unordered line pairs within each unit and
// classifies them into clone tiers. The detector is pure computation: it
// holds no shared state, so every run gets its own totals and sensitivity
// snapshot.
type LineCloneDetector struct {
	config     *LineCloneDetectorConfig
	classifier *Classifier
	isRenamed  ComparisonPredicate
	isModified ComparisonPredicate
}

// NewLineCloneDetector creates a detector whose classifier captures the
// configured sensitivity for the whole run.
func NewLineCloneDetector(config *LineCloneDetectorConfig) (*LineCloneDetector, error) {
	if config == nil {
		return nil, fmt.Errorf("detector config cannot be nil")
	}

	classifier, err := NewClassifier(config.Sensitivity)
	if err != nil {
		return nil, err
	}

	isRenamed := config.IsRenamed
	if isRenamed == nil {
		isRenamed = neverMatches
	}
	isModified := config.IsModified
	if isModified == nil {
		isModified = neverMatches
	}

	return &LineCloneDetector{
		config:     config,
		classifier: classifier,
		isRenamed:  isRenamed,
		isModified: isModified,
	}, nil
}

// Classifier returns the classifier snapshotted for this run
func (d *LineCloneDetector) Classifier() *Classifier {
	return d.classifier
}

// Detect runs clone detection over the given units without cancellation
func (d *LineCloneDetector) Detect(units []SourceUnit) ([]*LineClone, *RunTotals) {
	clones, totals, _ := d.DetectWithContext(context.Background(), units)
	return clones, totals
}

// DetectWithContext runs clone detection over the given units.
//
// For each unit independently, every index pair (i, j) with i < j is
// normalized, scored and classified; pairs with an empty side after
// normalization are not comparable and are excluded from the output
// entirely. Output order follows unit order, then i, then j, so identical
// input always yields an identical sequence.
//
// Cancellation is cooperative and checked between units, never mid-unit;
// a cancelled run returns the records accumulated so far together with
// the context error.
func (d *LineCloneDetector) DetectWithContext(ctx context.Context, units []SourceUnit) ([]*LineClone, *RunTotals, error) {
	clones := []*LineClone{}
	totals := &RunTotals{}

	for unitIndex, unit := range units {
		select {
		case <-ctx.Done():
			return clones, totals, ctx.Err()
		default:
		}

		d.detectInUnit(unit, &clones, totals)

		if d.config.ProgressCallback != nil {
			d.config.ProgressCallback(unitIndex+1, len(units))
		}
	}

	return clones, totals, nil
}

// detectInUnit scans all unordered line pairs of a single unit
func (d *LineCloneDetector) detectInUnit(unit SourceUnit, clones *[]*LineClone, totals *RunTotals) {
	lines := unit.Lines

	// Normalize each line once; n^2 pair comparisons reuse the results.
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = Normalize(line)
	}

	for i := 0; i < len(lines); i++ {
		if normalized[i] == "" {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if normalized[j] == "" {
				continue
			}

			similarity := Ratio(normalized[i], normalized[j])

			cloneType, ok := d.classifier.Classify(similarity)
			if !ok {
				// Below every cutoff; the injected comparisons may still
				// recognize a structural relation.
				switch {
				case d.isRenamed(lines[i], lines[j]):
					cloneType, ok = Type2Clone, true
				case d.isModified(lines[i], lines[j]):
					cloneType, ok = Type3Clone, true
				}
			}
			if !ok {
				continue
			}

			*clones = append(*clones, &LineClone{
				Type:       cloneType,
				UnitID:     unit.ID,
				LineA:      i + 1,
				LineB:      j + 1,
				Similarity: similarity,
			})
			totals.count(cloneType)
		}
	}
}
