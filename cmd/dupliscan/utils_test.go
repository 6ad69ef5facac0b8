package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupliscan/dupliscan/domain"
)

func TestGenerateTimestampedFileName(t *testing.T) {
	name := generateTimestampedFileName("clones", "csv")

	assert.True(t, strings.HasPrefix(name, "clones_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	// clones_YYYYMMDD_HHMMSS.csv
	assert.Len(t, name, len("clones_")+15+len(".csv"))
}

func TestParseSortCriteria(t *testing.T) {
	cmd := NewDetectCommand()

	tests := []struct {
		input    string
		expected domain.SortCriteria
		valid    bool
	}{
		{"location", domain.SortByLocation, true},
		{"similarity", domain.SortBySimilarity, true},
		{"type", domain.SortByType, true},
		{"Location", domain.SortByLocation, true},
		{"name", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			criteria, err := cmd.parseSortCriteria(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, criteria)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	t.Run("defaults to text", func(t *testing.T) {
		cmd := NewDetectCommand()

		format, extension, err := cmd.determineOutputFormat()

		require.NoError(t, err)
		assert.Equal(t, domain.OutputFormatText, format)
		assert.Empty(t, extension)
	})

	t.Run("single format flag", func(t *testing.T) {
		cmd := NewDetectCommand()
		cmd.csv = true

		format, extension, err := cmd.determineOutputFormat()

		require.NoError(t, err)
		assert.Equal(t, domain.OutputFormatCSV, format)
		assert.Equal(t, "csv", extension)
	})

	t.Run("pdf flag", func(t *testing.T) {
		cmd := NewDetectCommand()
		cmd.pdf = true

		format, extension, err := cmd.determineOutputFormat()

		require.NoError(t, err)
		assert.Equal(t, domain.OutputFormatPDF, format)
		assert.Equal(t, "pdf", extension)
	})

	t.Run("conflicting format flags", func(t *testing.T) {
		cmd := NewDetectCommand()
		cmd.json = true
		cmd.csv = true

		_, _, err := cmd.determineOutputFormat()

		assert.Error(t, err)
	})
}

func TestParseLineRange(t *testing.T) {
	tests := []struct {
		input string
		start int
		end   int
		valid bool
	}{
		{"12:20", 12, 20, true},
		{"1:1", 1, 1, true},
		{" 3 : 7 ", 3, 7, true},
		{"12", 0, 0, false},
		{"a:b", 0, 0, false},
		{"12:", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, err := parseLineRange(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.start, start)
				assert.Equal(t, tt.end, end)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
