package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupliscan/dupliscan/domain"
)

func TestCloneConfigurationLoader_LoadCloneConfig(t *testing.T) {
	loader := NewCloneConfigurationLoader()

	dir := t.TempDir()
	path := filepath.Join(dir, "dupliscan.toml")
	content := `
[detection]
sensitivity = 0.7

[input]
extensions = [".go"]
recursive = false

[output]
format = "csv"
sort_by = "type"
show_source = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	request, err := loader.LoadCloneConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 0.7, request.Sensitivity)
	assert.Equal(t, []string{".go"}, request.Extensions)
	assert.False(t, request.Recursive)
	assert.Equal(t, domain.OutputFormatCSV, request.OutputFormat)
	assert.Equal(t, domain.SortByType, request.SortBy)
	assert.True(t, request.ShowSource)
}

func TestCloneConfigurationLoader_LoadMissingFile(t *testing.T) {
	loader := NewCloneConfigurationLoader()

	_, err := loader.LoadCloneConfig("/nonexistent/dupliscan.toml")
	assert.Error(t, err)
}

func TestCloneConfigurationLoader_SaveRoundTrip(t *testing.T) {
	loader := NewCloneConfigurationLoader()

	request := domain.DefaultCloneRequest()
	request.Sensitivity = 0.6
	request.Extensions = []string{".py"}
	request.OutputFormat = domain.OutputFormatYAML

	path := filepath.Join(t.TempDir(), "dupliscan.toml")
	require.NoError(t, loader.SaveCloneConfig(request, path))

	loaded, err := loader.LoadCloneConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, loaded.Sensitivity)
	assert.Equal(t, []string{".py"}, loaded.Extensions)
	assert.Equal(t, domain.OutputFormatYAML, loaded.OutputFormat)
}

func TestMergeWithFlags(t *testing.T) {
	fileReq := domain.DefaultCloneRequest()
	fileReq.Sensitivity = 0.7
	fileReq.Extensions = []string{".go"}
	fileReq.SortBy = domain.SortByType

	flagReq := domain.DefaultCloneRequest()
	flagReq.Paths = []string{"src/"}
	flagReq.Sensitivity = 0.95
	flagReq.Extensions = []string{".py"}
	flagReq.SortBy = domain.SortBySimilarity

	t.Run("unset flags keep file values", func(t *testing.T) {
		loader := NewCloneConfigurationLoaderWithFlags(map[string]bool{})

		merged := loader.MergeWithFlags(fileReq, flagReq)

		assert.Equal(t, 0.7, merged.Sensitivity)
		assert.Equal(t, []string{".go"}, merged.Extensions)
		assert.Equal(t, domain.SortByType, merged.SortBy)
	})

	t.Run("explicit flags win over file values", func(t *testing.T) {
		loader := NewCloneConfigurationLoaderWithFlags(map[string]bool{
			"sensitivity": true,
			"extensions":  true,
			"sort":        true,
		})

		merged := loader.MergeWithFlags(fileReq, flagReq)

		assert.Equal(t, 0.95, merged.Sensitivity)
		assert.Equal(t, []string{".py"}, merged.Extensions)
		assert.Equal(t, domain.SortBySimilarity, merged.SortBy)
	})

	t.Run("paths always come from the command line", func(t *testing.T) {
		loader := NewCloneConfigurationLoaderWithFlags(map[string]bool{})

		merged := loader.MergeWithFlags(fileReq, flagReq)

		assert.Equal(t, []string{"src/"}, merged.Paths)
	})

	t.Run("output format from flags when set", func(t *testing.T) {
		loader := NewCloneConfigurationLoaderWithFlags(map[string]bool{})

		withFormat := *flagReq
		withFormat.OutputFormat = domain.OutputFormatPDF

		merged := loader.MergeWithFlags(fileReq, &withFormat)
		assert.Equal(t, domain.OutputFormatPDF, merged.OutputFormat)
	})
}
