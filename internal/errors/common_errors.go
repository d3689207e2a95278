package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType classifies domain failures.
type ErrorType string

const (
	// ErrTypeStoreConnection means the record store could not be reached at startup.
	ErrTypeStoreConnection ErrorType = "STORE_CONNECTION"
	// ErrTypeStoreAccess means a single store operation failed.
	ErrTypeStoreAccess ErrorType = "STORE_ACCESS"
	// ErrTypeDataParse means a stored row could not be coerced to a record.
	ErrTypeDataParse ErrorType = "DATA_PARSE"
	// ErrTypeEmptyResult means a filter matched no rows.
	ErrTypeEmptyResult ErrorType = "EMPTY_RESULT"
	// ErrTypePredictionInput means a feature set did not match the model.
	ErrTypePredictionInput ErrorType = "PREDICTION_INPUT"
	// ErrTypeConfig means the configuration is unusable.
	ErrTypeConfig ErrorType = "CONFIG"
)

// Context keys attached to AppError values.
const (
	ContextOperation  = "operation"
	ContextRow        = "row"
	ContextColumn     = "column"
	ContextReason     = "reason"
	ContextMissing    = "missing"
	ContextUnexpected = "unexpected"
)

// ReasonOutOfRange marks a store access error caused by a bad row index.
const ReasonOutOfRange = "out_of_range"

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

// Code returns the error type as a plain string
func (e *AppError) Code() string {
	return string(e.Type)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ContextString returns a string context value, or "" when absent.
func (e *AppError) ContextString(key string) string {
	s, _ := e.Context[key].(string)
	return s
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

// NewStoreConnectionError reports a store that cannot be opened.
func NewStoreConnectionError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStoreConnection, message, cause)
}

// NewStoreAccessError reports a failed store operation.
func NewStoreAccessError(operation string, cause error) *AppError {
	return NewAppError(ErrTypeStoreAccess, operation+" failed", cause).
		WithContext(ContextOperation, operation)
}

// NewRowOutOfRangeError reports a row index outside the data rows of the store.
func NewRowOutOfRangeError(operation string, row int) *AppError {
	return NewAppError(ErrTypeStoreAccess, fmt.Sprintf("%s failed: row %d is out of range", operation, row), nil).
		WithContext(ContextOperation, operation).
		WithContext(ContextRow, row).
		WithContext(ContextReason, ReasonOutOfRange)
}

// NewDataParseError reports a field of a stored row that could not be coerced.
func NewDataParseError(row int, column string, cause error) *AppError {
	return NewAppError(ErrTypeDataParse, fmt.Sprintf("row %d: invalid %s", row, column), cause).
		WithContext(ContextRow, row).
		WithContext(ContextColumn, column)
}

// NewEmptyResultError reports a filter that matched nothing.
func NewEmptyResultError() *AppError {
	return NewAppError(ErrTypeEmptyResult, "No data available for the selected filters.", nil)
}

// NewPredictionInputError reports features missing from or unknown to the model.
func NewPredictionInputError(missing, unexpected []string) *AppError {
	missing = sortedCopy(missing)
	unexpected = sortedCopy(unexpected)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(unexpected) > 0 {
		parts = append(parts, "unexpected "+strings.Join(unexpected, ", "))
	}
	return NewAppError(ErrTypePredictionInput, "feature set does not match model: "+strings.Join(parts, "; "), nil).
		WithContext(ContextMissing, missing).
		WithContext(ContextUnexpected, unexpected)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err's chain holds an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == errType
}

// IsOutOfRange reports whether err is a store access error for a bad row index.
func IsOutOfRange(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == ErrTypeStoreAccess && appErr.ContextString(ContextReason) == ReasonOutOfRange
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
