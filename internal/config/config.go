// Package config provides configuration management for decimalog using Viper.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/decimalog/internal/paths"
	"github.com/thoreinstein/decimalog/pkg/fileutil"
	"github.com/thoreinstein/decimalog/pkg/logging"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. DECIMALOG_LEVEL for "level".
const EnvPrefix = "DECIMALOG"

// EnvConfigDir overrides the directory searched for config.yaml.
const EnvConfigDir = EnvPrefix + "_CONFIG_DIR"

// CurrentVersion is the only config file version understood.
const CurrentVersion = 1

// Config represents the top-level configuration structure.
type Config struct {
	Version     int    `mapstructure:"version" yaml:"version" toml:"version"`
	Folder      string `mapstructure:"folder" yaml:"folder" toml:"folder"`
	Filename    string `mapstructure:"filename" yaml:"filename" toml:"filename"`
	Level       string `mapstructure:"level" yaml:"level" toml:"level"`
	ClassLength int    `mapstructure:"class_length" yaml:"class_length" toml:"class_length"`
	Color       string `mapstructure:"color" yaml:"color" toml:"color"`
}

// Keys lists the configuration keys in file order.
var Keys = []string{"version", "folder", "filename", "level", "class_length", "color"}

// IsKey reports whether key is a known configuration key.
func IsKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Default returns the configuration used when no file or override is present.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		Folder:      paths.LogDir(),
		Filename:    logging.DefaultFilename,
		Level:       logging.DefaultLevel,
		ClassLength: logging.DefaultClassLength,
		Color:       string(logging.ColorAuto),
	}
}

// Dir returns the directory searched for config.yaml: $DECIMALOG_CONFIG_DIR
// when set, otherwise <ConfigHome>/decimalog.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return paths.ConfigDir()
}

// Init resets Viper and installs the search path, environment binding and
// defaults. Call this once at application startup before accessing config
// values; calling it again discards state from an earlier Load.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("folder", d.Folder)
	viper.SetDefault("filename", d.Filename)
	viper.SetDefault("level", d.Level)
	viper.SetDefault("class_length", d.ClassLength)
	viper.SetDefault("color", d.Color)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
// The result is validated; all validation errors are joined.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load without a file: defaults apply.
		case path != "" && errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// FileUsed returns the config file Viper read, or the default location when
// none was read.
func FileUsed() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(Dir(), paths.ConfigFileName)
}

// Options converts cfg into logging.Options.
func (c *Config) Options() logging.Options {
	return logging.Options{
		Folder:      c.Folder,
		Filename:    c.Filename,
		Level:       c.Level,
		ClassLength: c.ClassLength,
		Color:       logging.ColorMode(strings.ToLower(c.Color)),
	}
}

// Get returns the value of key as a string.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "version":
		return strconv.Itoa(c.Version), true
	case "folder":
		return c.Folder, true
	case "filename":
		return c.Filename, true
	case "level":
		return c.Level, true
	case "class_length":
		return strconv.Itoa(c.ClassLength), true
	case "color":
		return c.Color, true
	default:
		return "", false
	}
}

// Set assigns value to key. Integer keys must parse as base-10 integers;
// other values are stored as given and checked by Validate.
func (c *Config) Set(key, value string) error {
	switch key {
	case "version", "class_length":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &FieldError{Field: key, Value: value, Err: ErrInvalidValue}
		}
		if key == "version" {
			c.Version = n
		} else {
			c.ClassLength = n
		}
	case "folder":
		c.Folder = value
	case "filename":
		c.Filename = value
	case "level":
		c.Level = value
	case "color":
		c.Color = value
	default:
		return errors.Newf("unknown key %q", key)
	}
	return nil
}

// ReadFile decodes the YAML file at path over Default, ignoring environment
// variables and flags. A missing file yields Default.
func ReadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}
