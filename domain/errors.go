package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeFileNotFound         = "FILE_NOT_FOUND"
	ErrCodeLineRangeOutOfBounds = "LINE_RANGE_OUT_OF_BOUNDS"
	ErrCodeMalformedReportRow   = "MALFORMED_REPORT_ROW"
	ErrCodeAnalysisError        = "ANALYSIS_ERROR"
	ErrCodeConfigError          = "CONFIG_ERROR"
	ErrCodeOutputError          = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat    = "UNSUPPORTED_FORMAT"
	ErrCodeUnexpectedFailure    = "UNEXPECTED_FAILURE"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error.
// Recoverable: the caller may supply an alternate path.
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewLineRangeError creates a line range out of bounds error carrying the
// offending range and the file's actual line count.
func NewLineRangeError(path string, startLine, endLine, lineCount int) error {
	return NewDomainError(ErrCodeLineRangeOutOfBounds,
		fmt.Sprintf("line range %d-%d exceeds %s (%d lines)", startLine, endLine, path, lineCount), nil)
}

// NewMalformedReportRowError creates a malformed report row error
func NewMalformedReportRowError(rowNumber, columns int) error {
	return NewDomainError(ErrCodeMalformedReportRow,
		fmt.Sprintf("report row %d has %d columns, expected at least 5", rowNumber, columns), nil)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewUnexpectedFailureError wraps any other fault during a record-dependent
// operation. Such faults are reported to the caller, never fatal.
func NewUnexpectedFailureError(message string, cause error) error {
	return NewDomainError(ErrCodeUnexpectedFailure, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// IsErrorCode reports whether err is a DomainError with the given code
func IsErrorCode(err error, code string) bool {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
