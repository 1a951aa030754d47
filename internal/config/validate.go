package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/thoreinstein/decimalog/pkg/logging"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version other than CurrentVersion.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidValue indicates a field value outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, &FieldError{
			Field: "version",
			Value: strconv.Itoa(cfg.Version),
			Err:   ErrUnsupportedVersion,
		})
	}

	if err := validatePath(cfg.Folder); err != nil {
		errs = append(errs, &FieldError{Field: "folder", Value: cfg.Folder, Err: err})
	}

	if cfg.Filename != "" && (strings.ContainsAny(cfg.Filename, `/\`) || cfg.Filename == "." || cfg.Filename == "..") {
		errs = append(errs, &FieldError{Field: "filename", Value: cfg.Filename, Err: ErrInvalidPath})
	}

	if cfg.Level != "" {
		if _, err := logging.ParseLevel(cfg.Level); err != nil {
			errs = append(errs, &FieldError{Field: "level", Value: cfg.Level, Err: ErrInvalidValue})
		}
	}

	if cfg.ClassLength < 0 {
		errs = append(errs, &FieldError{
			Field: "class_length",
			Value: strconv.Itoa(cfg.ClassLength),
			Err:   ErrInvalidValue,
		})
	}

	if _, err := logging.ParseColorMode(cfg.Color); err != nil {
		errs = append(errs, &FieldError{Field: "color", Value: cfg.Color, Err: ErrInvalidValue})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + strconv.Quote(e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
