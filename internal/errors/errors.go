package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures. Row-level anomalies (non-numeric
// values, unmatched dimension joins) are not errors at all; they are dropped
// and counted by the stage that observes them.
type ErrorType string

const (
	ErrTypeMissingReference ErrorType = "MISSING_REFERENCE"
	ErrTypeNoInputFiles     ErrorType = "NO_INPUT_FILES"
	ErrTypeSchema           ErrorType = "SCHEMA"
	ErrTypeInvariant        ErrorType = "INVARIANT"
	ErrTypeParsing          ErrorType = "PARSING"
	ErrTypeStorage          ErrorType = "STORAGE"
	ErrTypeConfig           ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error. Stages use it to attach counts and
// example offending values so operators see the affected scope.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper constructors for the pipeline taxonomy

// NewMissingReferenceError signals that the stronghold reference workbook is absent.
func NewMissingReferenceError(path string, cause error) *AppError {
	return NewAppError(ErrTypeMissingReference, fmt.Sprintf("reference file not found: %s", path), cause)
}

// NewNoInputFilesError signals that a source directory yielded zero eligible files.
func NewNoInputFilesError(dir string) *AppError {
	return NewAppError(ErrTypeNoInputFiles, fmt.Sprintf("no eligible source files in %s", dir), nil)
}

// NewSchemaError signals missing required columns. Not recoverable by
// dropping rows.
func NewSchemaError(message string) *AppError {
	return NewAppError(ErrTypeSchema, message, nil)
}

// NewInvariantError signals a domain-range violation (negative value, null
// date, unknown categorical code). Always fatal for the whole run.
func NewInvariantError(message string) *AppError {
	return NewAppError(ErrTypeInvariant, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
