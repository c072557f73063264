package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorSelftest = 3   // Indicates a self-test detected an inconsistency.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// DomainError represents malformed construction input to the radical
// core: a non-positive root index, a non-positive radicand, a zero
// denominator or a division by zero. It always reflects a caller
// contract violation and is never retried or coerced.
type DomainError struct {
	// Message explains which input violated the domain contract.
	Message string
}

// Error returns the error message for a DomainError.
func (e DomainError) Error() string { return e.Message }

// NewDomainError creates a new DomainError with a formatted message.
func NewDomainError(format string, a ...any) error {
	return DomainError{Message: fmt.Sprintf(format, a...)}
}

// UnsupportedError reports a request that is mathematically out of
// scope, such as sign determination or inversion of a value containing
// a root of index greater than two. The boundary is deliberate: no
// verified exact algorithm for the general sum-of-radicals sign problem
// is known.
type UnsupportedError struct {
	// Operation is the name of the requested operation (e.g. "Sign").
	Operation string
	// Reason explains why the operation is not available for the operand.
	Reason string
}

// Error returns a formatted message describing the unsupported request.
func (e UnsupportedError) Error() string {
	return fmt.Sprintf("operation %q is not supported: %s", e.Operation, e.Reason)
}

// NotRepresentableError reports a projection (to integer or rational)
// requested on a value that is not of that exact form.
type NotRepresentableError struct {
	// Target is the requested projection target ("integer", "rational").
	Target string
}

// Error returns a formatted message describing the failed projection.
func (e NotRepresentableError) Error() string {
	return fmt.Sprintf("value does not represent a %s", e.Target)
}

// ParseError represents a failure to parse an input expression. It
// identifies the byte offset of the offending token.
type ParseError struct {
	// Pos is the byte offset in the input where parsing failed.
	Pos int
	// Message explains the parse failure.
	Message string
}

// Error returns a formatted message describing the parse failure.
func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Message)
}

// InternalError represents a broken internal invariant, such as the
// sign-determination recursion exceeding its depth bound. It should
// never occur for well-formed input; encountering one is a bug.
type InternalError struct {
	// Message describes the violated invariant.
	Message string
}

// Error returns the error message for an InternalError.
func (e InternalError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
