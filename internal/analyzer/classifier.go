package analyzer

import (
	"fmt"

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
	if name, ok := constants.CloneTypeNames[int(ct)]; ok {
		return name
	}
	return "Unknown"
}

// Classifier maps a similarity ratio to a clone tier. The sensitivity is
// captured once at construction and held fixed, so every pair of a run is
// classified under the same cutoffs even if the global setting changes
// mid-run.
type Classifier struct {
	sensitivity float64
	cutoffType1 float64
	cutoffType2 float64
	cutoffType3 float64
}

// NewClassifier creates a classifier with cutoffs scaled by sensitivity.
// Sensitivity must lie in (0, 1].
func NewClassifier(sensitivity float64) (*Classifier, error) {
	if sensitivity <= 0.0 || sensitivity > constants.MaxSensitivity {
		return nil, fmt.Errorf("sensitivity %.3f out of range (0.0, %.1f]", sensitivity, constants.MaxSensitivity)
	}

	return &Classifier{
		sensitivity: sensitivity,
		cutoffType1: constants.BaseType1Ratio * sensitivity,
		cutoffType2: constants.BaseType2Ratio * sensitivity,
		cutoffType3: constants.BaseType3Ratio * sensitivity,
	}, nil
}

// Sensitivity returns the sensitivity captured at construction
func (c *Classifier) Sensitivity() float64 {
	return c.sensitivity
}

// Cutoffs returns the effective Type-1, Type-2 and Type-3 cutoffs
func (c *Classifier) Cutoffs() (float64, float64, float64) {
	return c.cutoffType1, c.cutoffType2, c.cutoffType3
}

// Classify maps a similarity ratio to the highest tier whose cutoff it
// meets; most-exact first, first match wins. The boolean result is false
// when the similarity falls below every cutoff and no record should be
// emitted.
func (c *Classifier) Classify(similarity float64) (CloneType, bool) {
	switch {
	case similarity >= c.cutoffType1:
		return Type1Clone, true
	case similarity >= c.cutoffType2:
		return Type2Clone, true
	case similarity >= c.cutoffType3:
		return Type3Clone, true
	default:
		return 0, false
	}
}
