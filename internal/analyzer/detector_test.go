package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(t *testing.T, sensitivity float64) *LineCloneDetector {
	t.Helper()
	detector, err := NewLineCloneDetector(&LineCloneDetectorConfig{Sensitivity: sensitivity})
	require.NoError(t, err)
	return detector
}

func TestNewLineCloneDetector(t *testing.T) {
	t.Run("nil config is rejected", func(t *testing.T) {
		_, err := NewLineCloneDetector(nil)
		assert.Error(t, err)
	})

	t.Run("invalid sensitivity is rejected", func(t *testing.T) {
		_, err := NewLineCloneDetector(&LineCloneDetectorConfig{Sensitivity: 0.0})
		assert.Error(t, err)
	})

	t.Run("classifier snapshots the sensitivity", func(t *testing.T) {
		detector := newTestDetector(t, 0.8)
		assert.Equal(t, 0.8, detector.Classifier().Sensitivity())
	})
}

func TestDetectExactDuplicate(t *testing.T) {
	detector := newTestDetector(t, 1.0)

	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"x = 1", "x = 1", "y = 2"}},
	}

	clones, totals := detector.Detect(units)

	require.Len(t, clones, 1)
	assert.Equal(t, Type1Clone, clones[0].Type)
	assert.Equal(t, "a.py", clones[0].UnitID)
	assert.Equal(t, 1, clones[0].LineA)
	assert.Equal(t, 2, clones[0].LineB)
	assert.InDelta(t, 1.0, clones[0].Similarity, 1e-9)

	assert.Equal(t, 1, totals.Exact)
	assert.Equal(t, 0, totals.Renamed)
	assert.Equal(t, 0, totals.Modified)
}

func TestDetectSkipsNonComparableLines(t *testing.T) {
	detector := newTestDetector(t, 1.0)

	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"# comment", "x = 1", "", "import os", "x = 1"}},
	}

	clones, totals := detector.Detect(units)

	// The comment, blank and import lines never enter a pair; only the two
	// identical code lines match, at their original 1-based positions.
	require.Len(t, clones, 1)
	assert.Equal(t, 2, clones[0].LineA)
	assert.Equal(t, 5, clones[0].LineB)
	assert.Equal(t, 1, totals.Exact)
}

func TestDetectPairsAreUnitScoped(t *testing.T) {
	detector := newTestDetector(t, 1.0)

	// Identical lines in different units must not pair up
	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"x = 1"}},
		{ID: "b.py", Lines: []string{"x = 1"}},
	}

	clones, totals := detector.Detect(units)

	assert.Empty(t, clones)
	assert.Equal(t, 0, totals.Exact+totals.Renamed+totals.Modified)
}

func TestDetectOrderingIsDeterministic(t *testing.T) {
	detector := newTestDetector(t, 1.0)

	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"x = 1", "x = 1", "x = 1"}},
		{ID: "b.py", Lines: []string{"y = 2", "y = 2"}},
	}

	clones, _ := detector.Detect(units)

	require.Len(t, clones, 4)
	// Unit order, then first index, then second index
	assert.Equal(t, []int{1, 1, 2, 1}, []int{clones[0].LineA, clones[1].LineA, clones[2].LineA, clones[3].LineA})
	assert.Equal(t, []int{2, 3, 3, 2}, []int{clones[0].LineB, clones[1].LineB, clones[2].LineB, clones[3].LineB})
	assert.Equal(t, "a.py", clones[0].UnitID)
	assert.Equal(t, "b.py", clones[3].UnitID)

	for _, clone := range clones {
		assert.Less(t, clone.LineA, clone.LineB)
	}
}

func TestDetectSensitivityRelaxation(t *testing.T) {
	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"x = 1", "y = 2"}},
	}

	// "x = 1" vs "y = 2" scores 0.6: invisible at full sensitivity
	strict := newTestDetector(t, 1.0)
	clones, _ := strict.Detect(units)
	assert.Empty(t, clones)

	// At 0.7 the Type-3 cutoff drops to 0.49 and the pair surfaces
	relaxed := newTestDetector(t, 0.7)
	clones, totals := relaxed.Detect(units)
	require.Len(t, clones, 1)
	assert.Equal(t, Type3Clone, clones[0].Type)
	assert.Equal(t, 1, totals.Modified)
}

func TestDetectRenamedTier(t *testing.T) {
	detector := newTestDetector(t, 1.0)

	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"total = price * quantity", "total = price * quantity2"}},
	}

	clones, totals := detector.Detect(units)

	require.Len(t, clones, 1)
	assert.Equal(t, Type2Clone, clones[0].Type)
	assert.Equal(t, 1, totals.Renamed)
}

func TestDetectComparisonPredicates(t *testing.T) {
	t.Run("renamed predicate upgrades a below-cutoff pair", func(t *testing.T) {
		detector, err := NewLineCloneDetector(&LineCloneDetectorConfig{
			Sensitivity: 1.0,
			IsRenamed: func(line1, line2 string) bool {
				return strings.Contains(line1, "compute") && strings.Contains(line2, "compute")
			},
		})
		require.NoError(t, err)

		units := []SourceUnit{
			{ID: "a.py", Lines: []string{"a = compute(1)", "unrelated_name = compute_other(99, 98)"}},
		}

		clones, totals := detector.Detect(units)

		require.Len(t, clones, 1)
		assert.Equal(t, Type2Clone, clones[0].Type)
		assert.Equal(t, 1, totals.Renamed)
	})

	t.Run("renamed predicate wins over modified predicate", func(t *testing.T) {
		always := func(line1, line2 string) bool { return true }
		detector, err := NewLineCloneDetector(&LineCloneDetectorConfig{
			Sensitivity: 1.0,
			IsRenamed:   always,
			IsModified:  always,
		})
		require.NoError(t, err)

		units := []SourceUnit{
			{ID: "a.py", Lines: []string{"aaaa", "zzzz"}},
		}

		clones, _ := detector.Detect(units)

		require.Len(t, clones, 1)
		assert.Equal(t, Type2Clone, clones[0].Type)
	})

	t.Run("predicates never see classified pairs", func(t *testing.T) {
		called := false
		detector, err := NewLineCloneDetector(&LineCloneDetectorConfig{
			Sensitivity: 1.0,
			IsRenamed: func(line1, line2 string) bool {
				called = true
				return false
			},
		})
		require.NoError(t, err)

		units := []SourceUnit{
			{ID: "a.py", Lines: []string{"x = 1", "x = 1"}},
		}

		clones, _ := detector.Detect(units)

		require.Len(t, clones, 1)
		assert.Equal(t, Type1Clone, clones[0].Type)
		assert.False(t, called)
	})
}

func TestDetectWithContextCancellation(t *testing.T) {
	detector := newTestDetector(t, 1.0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"x = 1", "x = 1"}},
	}

	clones, totals, err := detector.DetectWithContext(ctx, units)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, clones)
	assert.Equal(t, 0, totals.Exact)
}

func TestDetectProgressCallback(t *testing.T) {
	var calls [][2]int
	detector, err := NewLineCloneDetector(&LineCloneDetectorConfig{
		Sensitivity: 1.0,
		ProgressCallback: func(processed, total int) {
			calls = append(calls, [2]int{processed, total})
		},
	})
	require.NoError(t, err)

	units := []SourceUnit{
		{ID: "a.py", Lines: []string{"x = 1"}},
		{ID: "b.py", Lines: []string{"y = 2"}},
	}

	detector.Detect(units)

	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
}

func TestDetectEmptyInput(t *testing.T) {
	detector := newTestDetector(t, 1.0)

	clones, totals := detector.Detect(nil)
	assert.NotNil(t, clones)
	assert.Empty(t, clones)
	assert.Equal(t, 0, totals.Exact+totals.Renamed+totals.Modified)

	clones, _ = detector.Detect([]SourceUnit{{ID: "empty.py", Lines: []string{}}})
	assert.Empty(t, clones)
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name     string
		clone    *LineClone
		expected string
	}{
		{
			name:     "exact clone",
			clone:    &LineClone{Type: Type1Clone, UnitID: "a.py", LineA: 3, LineB: 7},
			expected: "Remove the exact duplicate of line 3 at line 7 in a.py",
		},
		{
			name:     "renamed clone",
			clone:    &LineClone{Type: Type2Clone, UnitID: "b.py", LineA: 1, LineB: 2},
			expected: "Rename to avoid redundancy between lines 1 and 2 in b.py",
		},
		{
			name:     "modified clone",
			clone:    &LineClone{Type: Type3Clone, UnitID: "c.py", LineA: 10, LineB: 20},
			expected: "Consolidate the similar logic at lines 10 and 20 in c.py",
		},
		{
			name:     "unknown tier yields nothing",
			clone:    &LineClone{Type: CloneType(0), UnitID: "d.py", LineA: 1, LineB: 2},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Recommend(tt.clone))
		})
	}
}
