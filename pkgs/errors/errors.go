// Package errors defines the two error categories cliarg reports:
// configuration errors raised while declarations are applied, and usage
// errors raised while the command line is parsed.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error types
const (
	// ErrConfiguration marks contradictory or malformed argument declarations.
	ErrConfiguration = "CONFIGURATION_ERROR"

	// ErrUsage marks a command line that cannot be resolved against the
	// declared arguments.
	ErrUsage = "USAGE_ERROR"
)

// CLIArgError represents a structured error with type and context
type CLIArgError struct {
	Type    string
	Message string
	Hint    string // How to fix it, shown under the message
	Cause   error
	Context map[string]any
}

// Error implements the error interface
func (e *CLIArgError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap allows error unwrapping
func (e *CLIArgError) Unwrap() error {
	return e.Cause
}

// New creates a new CLIArgError
func New(errorType, message string) *CLIArgError {
	return &CLIArgError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap creates a new CLIArgError wrapping an existing error
func Wrap(errorType, message string, cause error) *CLIArgError {
	e := New(errorType, message)
	e.Cause = cause
	return e
}

// WithContext adds context information to the error
func (e *CLIArgError) WithContext(key string, value any) *CLIArgError {
	e.Context[key] = value
	return e
}

// WithHint attaches a remediation hint
func (e *CLIArgError) WithHint(hint string) *CLIArgError {
	e.Hint = hint
	return e
}

// GetContext returns context value by key
func (e *CLIArgError) GetContext(key string) (any, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// NewConfigError creates a configuration error for the argument named by flag
func NewConfigError(flag, format string, args ...any) *CLIArgError {
	return New(ErrConfiguration, fmt.Sprintf("argument %s: %s", flag, fmt.Sprintf(format, args...))).
		WithContext("argument", flag)
}

// NewUsageError creates a usage error
func NewUsageError(format string, args ...any) *CLIArgError {
	return New(ErrUsage, fmt.Sprintf(format, args...))
}

// IsErrorType checks if err, or any error it wraps, is a CLIArgError of the given type
func IsErrorType(err error, errorType string) bool {
	var e *CLIArgError
	if stderrors.As(err, &e) {
		return e.Type == errorType
	}
	return false
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	return IsErrorType(err, ErrConfiguration)
}

// IsUsageError reports whether err is a usage error
func IsUsageError(err error) bool {
	return IsErrorType(err, ErrUsage)
}
