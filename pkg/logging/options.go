package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v7"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Defaults applied by Setup to zero-valued options.
const (
	DefaultFolder      = "logs"
	DefaultFilename    = "app"
	DefaultLevel       = "INFO"
	DefaultClassLength = 20
)

// EnvPrefix is the prefix of the variables read by OptionsFromEnv.
const EnvPrefix = "DECIMALOG_"

// Options configures Setup. Zero values take the package defaults.
type Options struct {
	// Folder is the directory receiving the log files. It is created if missing.
	Folder string `env:"FOLDER" validate:"required"`

	// Filename is the base name of the log files, without extension.
	Filename string `env:"FILENAME" validate:"required,excludesall=/\\"`

	// Level is the minimum severity name, case-insensitive: TRACE, DEBUG,
	// INFO, WARNING, ERROR or CRITICAL.
	Level string `env:"LEVEL"`

	// ClassLength is the console width of the logger name column.
	ClassLength int `env:"CLASS_LENGTH" validate:"gte=0"`

	// Color selects console coloring: auto, always or never.
	Color ColorMode `env:"COLOR"`

	// Console is the console destination. Defaults to os.Stderr.
	Console io.Writer `validate:"-"`
}

// validate reports struct-tag violations using the env names in lower case,
// so errors read "class_length" rather than "ClassLength".
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToLower(f.Tag.Get("env"))
	})
	return v
}()

// OptionsFromEnv reads Options from DECIMALOG_FOLDER, DECIMALOG_FILENAME,
// DECIMALOG_LEVEL, DECIMALOG_CLASS_LENGTH and DECIMALOG_COLOR. Unset
// variables leave the zero value, which Setup replaces with the default.
func OptionsFromEnv() (Options, error) {
	var opts Options
	if err := env.Parse(&opts, env.Options{Prefix: EnvPrefix}); err != nil {
		return Options{}, &ConfigurationError{Field: "environment", Value: EnvPrefix + "*", Err: err}
	}
	return opts, nil
}

// withDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Folder == "" {
		o.Folder = DefaultFolder
	}
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}
	if strings.TrimSpace(o.Level) == "" {
		o.Level = DefaultLevel
	}
	if o.ClassLength == 0 {
		o.ClassLength = DefaultClassLength
	}
	if o.Color == "" {
		o.Color = ColorAuto
	}
	if o.Console == nil {
		o.Console = os.Stderr
	}
	return o
}

// resolve validates o (after defaults) and returns the parsed level and
// color mode. Every failure is a *ConfigurationError.
func (o Options) resolve() (slog.Level, ColorMode, error) {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return 0, "", &ConfigurationError{
				Field: fe.Field(),
				Value: fmt.Sprint(fe.Value()),
				Err:   errors.Newf("failed %q constraint", fe.Tag()),
			}
		}
		return 0, "", &ConfigurationError{Field: "options", Err: err}
	}

	level, err := ParseLevel(o.Level)
	if err != nil {
		return 0, "", err
	}

	mode, err := ParseColorMode(string(o.Color))
	if err != nil {
		return 0, "", err
	}

	return level, mode, nil
}
