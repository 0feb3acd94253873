package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDataLoad   ErrorType = "DATA_LOAD"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
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

// WithContext adds context to the error
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

// NewDataLoadError creates a load-stage error carrying the input path
func NewDataLoadError(message string, path string, cause error) *AppError {
	return NewAppError(ErrTypeDataLoad, message, cause).WithContext("path", path)
}

// NewSchemaMismatchError creates a load error naming the missing and extra columns
func NewSchemaMismatchError(path string, missing, extra []string) *AppError {
	return NewAppError(ErrTypeDataLoad, "input columns do not match expected schema", nil).
		WithContext("path", path).
		WithContext("missing_columns", missing).
		WithContext("extra_columns", extra)
}

// NewSchemaViolationError creates a fatal error for an unrecognized categorical
// value. Silent coercion would corrupt every downstream aggregate, so the
// offending raw value and row are surfaced instead.
func NewSchemaViolationError(field, rawValue string, row int) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("unrecognized %s value %q", field, rawValue), nil).
		WithContext("field", field).
		WithContext("raw_value", rawValue).
		WithContext("row", row)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	return appErr.Type == errType
}
