package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorMessage(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewInvalidInputError("bad sensitivity", nil)
		assert.Equal(t, "[INVALID_INPUT] bad sensitivity", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := NewUnexpectedFailureError("cannot read file", cause)
		assert.Equal(t, "[UNEXPECTED_FAILURE] cannot read file: permission denied", err.Error())
	})
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewOutputError("write failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestIsErrorCode(t *testing.T) {
	err := NewFileNotFoundError("missing.py", nil)

	assert.True(t, IsErrorCode(err, ErrCodeFileNotFound))
	assert.False(t, IsErrorCode(err, ErrCodeInvalidInput))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrCodeFileNotFound))
	assert.False(t, IsErrorCode(nil, ErrCodeFileNotFound))
}

func TestIsErrorCodeThroughWrapping(t *testing.T) {
	inner := NewLineRangeError("a.py", 10, 20, 5)
	wrapped := fmt.Errorf("preview failed: %w", inner)

	assert.True(t, IsErrorCode(wrapped, ErrCodeLineRangeOutOfBounds))
}

func TestNewLineRangeError(t *testing.T) {
	err := NewLineRangeError("src/app.py", 10, 20, 5)

	assert.Contains(t, err.Error(), "10-20")
	assert.Contains(t, err.Error(), "src/app.py")
	assert.Contains(t, err.Error(), "5 lines")
}

func TestNewUnsupportedFormatError(t *testing.T) {
	err := NewUnsupportedFormatError("xml")

	assert.True(t, IsErrorCode(err, ErrCodeUnsupportedFormat))
	assert.Contains(t, err.Error(), "xml")
}

func TestNewMalformedReportRowError(t *testing.T) {
	err := NewMalformedReportRowError(7, 3)

	assert.True(t, IsErrorCode(err, ErrCodeMalformedReportRow))
	assert.Contains(t, err.Error(), "row 7")
	assert.Contains(t, err.Error(), "3 columns")
}
