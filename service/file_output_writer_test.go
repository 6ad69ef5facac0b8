package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupliscan/dupliscan/domain"
)

func TestFileOutputWriter_ToWriter(t *testing.T) {
	var status bytes.Buffer
	writer := NewFileOutputWriter(&status)

	var out bytes.Buffer
	err := writer.Write(&out, "", domain.OutputFormatText, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "report body")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, "report body", out.String())
	assert.Empty(t, status.String(), "no status message for direct writer output")
}

func TestFileOutputWriter_ToFile(t *testing.T) {
	var status bytes.Buffer
	writer := NewFileOutputWriter(&status)

	path := filepath.Join(t.TempDir(), "clones.csv")
	err := writer.Write(nil, path, domain.OutputFormatCSV, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "a,b,c")
		return err
	})

	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", string(content))

	assert.Contains(t, status.String(), "CSV report generated:")
	assert.Contains(t, status.String(), "clones.csv")
}

func TestFileOutputWriter_CreateFailure(t *testing.T) {
	writer := NewFileOutputWriter(io.Discard)

	err := writer.Write(nil, "/nonexistent/dir/out.csv", domain.OutputFormatCSV, func(w io.Writer) error {
		return nil
	})

	assert.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeOutputError))
}

func TestFileOutputWriter_WriteFuncFailure(t *testing.T) {
	writer := NewFileOutputWriter(io.Discard)

	var out bytes.Buffer
	err := writer.Write(&out, "", domain.OutputFormatText, func(w io.Writer) error {
		return fmt.Errorf("render failed")
	})

	assert.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeOutputError))
}
