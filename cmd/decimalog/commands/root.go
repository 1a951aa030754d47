// Package commands implements the CLI commands for decimalog.
package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/decimalog/cmd"
	"github.com/thoreinstein/decimalog/internal/config"
	dlerrors "github.com/thoreinstein/decimalog/internal/errors"
	"github.com/thoreinstein/decimalog/pkg/logging"
)

// cliLoggerName names the logger carrying the CLI's own diagnostics.
const cliLoggerName = "decimalog"

// Persistent flag values. They override the config file and environment.
var (
	folderFlag      string
	filenameFlag    string
	levelFlag       string
	classLengthFlag int
	colorFlag       string
	configPath      string
	verbosity       int
)

// currentConfig is the effective configuration: defaults, then the config
// file, then DECIMALOG_* variables, then flags.
var currentConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// tolerantCommands run with defaults when the config file is broken, so
// the user can still inspect and repair it.
var tolerantCommands = map[string]bool{
	"help":    true,
	"version": true,
	"doctor":  true,
	"path":    true,
	"edit":    true,
	"set":     true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&folderFlag, "folder", "",
		"directory receiving the log files (default: $XDG_STATE_HOME/decimalog/logs)")
	flags.StringVar(&filenameFlag, "filename", "",
		"base name of the log files, without extension (default: app)")
	flags.StringVar(&levelFlag, "level", "",
		"minimum level: "+strings.Join(logging.LevelNames(), ", ")+" (default: INFO)")
	flags.IntVar(&classLengthFlag, "class-length", 0,
		"console width of the logger name column (default: 20)")
	flags.StringVar(&colorFlag, "color", "",
		"console color: auto, always, never (default: auto)")
	flags.StringVar(&configPath, "config", "",
		"config file (default: $XDG_CONFIG_HOME/decimalog/config.yaml)")
	flags.CountVarP(&verbosity, "verbose", "v",
		"increase diagnostic output (e.g., -v, -vv, -vvv)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("decimalog version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "decimalog",
	Short: "Leveled logging to the console, a per-run log file and a JSONL file",
	Long: `decimalog writes every record to three sinks at once: a colored console,
a plain-text log file created fresh for each run, and a JSON Lines file that
accumulates across runs.

Settings come from flags, then DECIMALOG_* environment variables, then
$XDG_CONFIG_HOME/decimalog/config.yaml, then built-in defaults.`,
	Example: `  # Emit a warning to all three sinks
  decimalog emit warning "disk at %d%%" 91

  # Show one record per severity with tracing enabled
  decimalog demo --level trace

  # Check the configuration and the log files
  decimalog doctor

  See Also: decimalog config, decimalog doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loadConfig(cmd)
		setupCLILogging(cmd)

		if configLoadErr != nil && !tolerantCommands[cmd.Name()] {
			return dlerrors.NewConfigError(configLoadErr)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// loadConfig reads the config file and applies flag overrides. A broken
// file leaves the defaults in place and is reported via configLoadErr.
func loadConfig(cmd *cobra.Command) {
	config.Init()
	cfg, err := config.Load(configPath)
	configLoadErr = err
	if err != nil {
		cfg = config.Default()
	}
	applyFlags(cmd, cfg)
	currentConfig = cfg
}

// applyFlags copies explicitly set persistent flags into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("folder") {
		cfg.Folder = folderFlag
	}
	if flags.Changed("filename") {
		cfg.Filename = filenameFlag
	}
	if flags.Changed("level") {
		cfg.Level = levelFlag
	}
	if flags.Changed("class-length") {
		cfg.ClassLength = classLengthFlag
	}
	if flags.Changed("color") {
		cfg.Color = colorFlag
	}
}

// setupCLILogging installs a console-only logger for the CLI's own
// diagnostics. Its threshold follows -v, not the configured level, and it
// never touches the log files.
func setupCLILogging(cmd *cobra.Command) {
	mode, err := logging.ParseColorMode(currentConfig.Color)
	if err != nil {
		mode = logging.ColorAuto
	}
	out := cmd.ErrOrStderr()

	l := logging.New(logging.NewConsoleHandler(out, &logging.ConsoleHandlerOptions{
		Level:       logging.LevelFromVerbosity(verbosity),
		ClassLength: currentConfig.ClassLength,
		Color:       mode.Enabled(out),
	})).Named(cliLoggerName)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, l))
}

// cliLogger returns the diagnostics logger installed for cmd.
func cliLogger(cmd *cobra.Command) *logging.Logger {
	return logging.FromContext(cmd.Context())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
