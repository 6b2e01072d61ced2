package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Configuration errors
	ErrConfigParse   ErrorType = "CONFIG_PARSE_ERROR"
	ErrConfigInvalid ErrorType = "CONFIG_INVALID_ERROR"

	// AWS errors
	ErrAWSClient    ErrorType = "AWS_CLIENT_ERROR"
	ErrRegionAccess ErrorType = "REGION_ACCESS_ERROR"

	// Normalization errors
	ErrMissingField ErrorType = "MISSING_FIELD_ERROR"
)

// CustomError represents a custom error with additional context
type CustomError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	WrappedErr error
}

// New creates a new custom error
func New(errorType ErrorType, message string, context map[string]interface{}, wrappedErr error) *CustomError {
	return &CustomError{
		Type:       errorType,
		Message:    message,
		Context:    context,
		WrappedErr: wrappedErr,
	}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.WrappedErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.WrappedErr)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *CustomError) Unwrap() error {
	return e.WrappedErr
}

// Is checks if the error is of a specific type
func Is(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}

	if customErr, ok := err.(*CustomError); ok {
		return customErr.Type == errType
	}

	return false
}

// MissingFieldError reports a required key that was absent from a raw record
// returned by the provider. It is fatal for a collection run: a missing
// required field means the API contract changed or the record is corrupt,
// and defaulting it would produce misleading inventory data.
type MissingFieldError struct {
	// Field is the raw record key that was absent, e.g. "InstanceId" or
	// "Association.IpOwnerId".
	Field string
	// RecordID identifies the owning record when it was already extracted
	// (instance id or network interface id). May be empty.
	RecordID string
}

// NewMissingField creates a MissingFieldError for the given raw key.
func NewMissingField(field, recordID string) *MissingFieldError {
	return &MissingFieldError{Field: field, RecordID: recordID}
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("[%s] required field %q missing from record %s", ErrMissingField, e.Field, e.RecordID)
	}
	return fmt.Sprintf("[%s] required field %q missing from record", ErrMissingField, e.Field)
}
