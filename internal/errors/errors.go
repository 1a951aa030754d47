package errors

import (
	"errors"
	"fmt"

	"github.com/thoreinstein/decimalog/pkg/logging"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownKey indicates a configuration key that decimalog does not define.
	ErrUnknownKey = errors.New("unknown configuration key")

	// ErrUnknownLevel indicates a level argument that is not a registered level name.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrChecksFailed indicates that at least one doctor check failed.
	ErrChecksFailed = errors.New("diagnostic checks failed")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: decimalog doctor",
	}
}

// FromSetup classifies an error returned by logging.Setup. Configuration
// errors are user errors; file system errors are system errors. Other
// errors, including nil, are returned unchanged.
func FromSetup(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, logging.ErrConfiguration):
		return NewUserError(err, "Check --level, --color and --class-length, or run: decimalog config list")
	case errors.Is(err, logging.ErrFileSystem):
		var fsErr *logging.FileSystemError
		if errors.As(err, &fsErr) {
			return NewSystemError(err, fmt.Sprintf("Check that %s is writable, or pass --folder", fsErr.Path))
		}
		return NewSystemError(err, "Check that the log folder is writable, or pass --folder")
	default:
		return err
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Code returns the exit code for err: the code of the first ExitError in
// its chain, ExitSuccess for nil, and ExitUser otherwise.
func Code(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
