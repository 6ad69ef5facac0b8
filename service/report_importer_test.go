package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupliscan/dupliscan/domain"
)

const sampleReportCSV = `Clone Type,Line 1,Line 2,Similarity,File,Recommendation
Type-1,1,2,100.00%,a.py,Remove the exact duplicate of line 1 at line 2 in a.py
Type-2,3,9,92.50%,a.py,Rename to avoid redundancy between lines 3 and 9 in a.py
Type-3,12,40,87.50%,b.py,Consolidate the similar logic at lines 12 and 40 in b.py

Metrics
Total Exact Clones,1
Total Renamed Clones,1
Total Modified Clones,1
`

func TestImportCSV(t *testing.T) {
	importer := NewCSVReportImporter()

	records, err := importer.ImportCSV(strings.NewReader(sampleReportCSV))

	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, domain.Type1Clone, records[0].Type)
	assert.Equal(t, "a.py", records[0].UnitID)
	assert.Equal(t, 1, records[0].LineA)
	assert.Equal(t, 2, records[0].LineB)
	assert.InDelta(t, 1.0, records[0].Similarity, 1e-9)
	assert.Equal(t, "Remove the exact duplicate of line 1 at line 2 in a.py", records[0].Recommendation)

	assert.Equal(t, domain.Type2Clone, records[1].Type)
	assert.InDelta(t, 0.925, records[1].Similarity, 1e-9)

	assert.Equal(t, domain.Type3Clone, records[2].Type)
	assert.Equal(t, "b.py", records[2].UnitID)
}

func TestImportCSVPreservesOrder(t *testing.T) {
	importer := NewCSVReportImporter()

	records, err := importer.ImportCSV(strings.NewReader(sampleReportCSV))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 12}, []int{records[0].LineA, records[1].LineA, records[2].LineA})
}

func TestImportCSVSkipsHeaderOnly(t *testing.T) {
	importer := NewCSVReportImporter()

	records, err := importer.ImportCSV(strings.NewReader("Clone Type,Line 1,Line 2,Similarity,File,Recommendation\n"))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestImportCSVSkipsShortRows(t *testing.T) {
	importer := NewCSVReportImporter()

	input := "Clone Type,Line 1,Line 2,Similarity,File\n" +
		"Type-1,1,2\n" +
		"Type-1,1,2,100.00%,a.py\n"

	records, err := importer.ImportCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.py", records[0].UnitID)
	assert.Empty(t, records[0].Recommendation)
}

func TestImportCSVSkipsUnparseableRows(t *testing.T) {
	importer := NewCSVReportImporter()

	input := "Clone Type,Line 1,Line 2,Similarity,File\n" +
		"Type-9,1,2,100.00%,a.py\n" +
		"Type-1,one,2,100.00%,a.py\n" +
		"Type-1,1,2,notapercent,a.py\n" +
		"Type-1,1,2,100.00%,a.py\n"

	records, err := importer.ImportCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.Type1Clone, records[0].Type)
}

func TestImportCSVSkipsMetricsTrailer(t *testing.T) {
	importer := NewCSVReportImporter()

	input := "Clone Type,Line 1,Line 2,Similarity,File\n" +
		"Metrics,,,,\n" +
		"Total Exact Clones,3,0,0,0\n" +
		"Type-1,1,2,100.00%,a.py\n"

	records, err := importer.ImportCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestImportCSVEmptyInput(t *testing.T) {
	importer := NewCSVReportImporter()

	records, err := importer.ImportCSV(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseSimilarityPercent(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		valid    bool
	}{
		{"100.00%", 1.0, true},
		{"87.50%", 0.875, true},
		{"0.00%", 0.0, true},
		{" 92.50% ", 0.925, true},
		{"92.50", 0.925, true},
		{"abc%", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, err := parseSimilarityPercent(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.InDelta(t, tt.expected, value, 1e-9)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
