package logging

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for setup failures. Use errors.Is to test for them; the
// concrete *ConfigurationError and *FileSystemError types carry the details.
var (
	// ErrConfiguration indicates a rejected setup option, such as an
	// unrecognized level name.
	ErrConfiguration = errors.New("logging configuration error")

	// ErrFileSystem indicates the log folder or one of the log files could
	// not be created or opened.
	ErrFileSystem = errors.New("logging file system error")
)

// ConfigurationError reports an invalid option passed to Setup.
type ConfigurationError struct {
	// Field is the option name (e.g. "level", "class_length").
	Field string

	// Value is the offending value as given by the caller.
	Value string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: invalid %s %q", ErrConfiguration, e.Field, e.Value)
	}
	return fmt.Sprintf("%v: invalid %s %q: %v", ErrConfiguration, e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// FileSystemError reports a failure to create the log folder or open a log file.
type FileSystemError struct {
	// Op is the attempted operation ("mkdir", "create", "open").
	Op string

	// Path is the file or directory involved.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrFileSystem, e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFileSystem.
func (e *FileSystemError) Is(target error) bool {
	return target == ErrFileSystem
}
