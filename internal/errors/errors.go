// Package errors provides a lightweight structured error type (ExepackError)
// for category-based classification in the CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an exepack error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategorySource     ErrorCategory = "source"

	// External tool integration errors
	CategoryTool      ErrorCategory = "tool"
	CategoryDeps      ErrorCategory = "deps"
	CategoryPackaging ErrorCategory = "packaging"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ExepackError is a structured error with category, severity, and context
type ExepackError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ExepackError
type ContextFields map[string]any

// Error implements the error interface
func (e *ExepackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ExepackError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ExepackError) WithContext(key string, value any) *ExepackError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ExepackError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ExepackError {
	return &ExepackError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ExepackError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ExepackError {
	return &ExepackError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}
