// Package errors provides sentinel errors and exit-code mapping for the
// tfstacks CLI.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for known conditions.
var (
	// ErrConfig indicates the infrastructure document could not be parsed
	// or failed graph validation (unknown source, ambiguous dependency,
	// dependency cycle, unresolved reference).
	ErrConfig = errors.New("configuration error")

	// ErrNotFound indicates a module, scope, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrRunner indicates a terraform invocation failed.
	ErrRunner = errors.New("runner failure")
)

// Exit codes returned by the CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitConfigError indicates the infrastructure document is invalid.
	ExitConfigError = 2

	// ExitRunnerFailure indicates a terraform invocation failed.
	ExitRunnerFailure = 3

	// ExitNotFound indicates a module, scope, or file was not found.
	ExitNotFound = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command layer already logged the error,
	// so main should not print it again.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrRunner):
		return ExitRunnerFailure
	default:
		return ExitGeneralError
	}
}

// WrapConfig wraps an error with ErrConfig.
func WrapConfig(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrConfig, err)
}

// WrapNotFound wraps an error with ErrNotFound.
func WrapNotFound(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
}

// WrapRunner wraps an error with ErrRunner.
func WrapRunner(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrRunner, err)
}
