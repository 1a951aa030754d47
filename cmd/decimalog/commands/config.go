package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/decimalog/internal/config"
	"github.com/thoreinstein/decimalog/internal/editor"
	dlerrors "github.com/thoreinstein/decimalog/internal/errors"
	"github.com/thoreinstein/decimalog/internal/paths"
	"github.com/thoreinstein/decimalog/pkg/fileutil"
)

var listFormat string

func init() {
	configListCmd.Flags().StringVarP(&listFormat, "format", "f", "yaml",
		"output format: yaml, toml")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage decimalog configuration",
	Long: `Manage decimalog configuration stored in $XDG_CONFIG_HOME/decimalog/config.yaml.

Keys: ` + strings.Join(config.Keys, ", ") + `

Without a subcommand, lists the effective configuration.`,
	Example: `  # List the effective configuration
  decimalog config

  # Get a specific value
  decimalog config get level

  # Set a value
  decimalog config set level debug

See Also: decimalog doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single effective configuration value: the config file with
DECIMALOG_* environment variables and flags applied.`,
	Example: `  decimalog config get folder

See Also: decimalog config set, decimalog config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a value in the config file. The file is validated before it is
replaced and is written atomically, so a failed set leaves it unchanged.
Environment variables and flags are not written.`,
	Example: `  decimalog config set level debug
  decimalog config set class_length 30

See Also: decimalog config get, decimalog config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective configuration",
	Long:  `List every configuration value in YAML or TOML format.`,
	Example: `  decimalog config list
  decimalog config list --format toml

See Also: decimalog config get, decimalog config set`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.FileUsed())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in an editor",
	Long: `Open the config file in $DECIMALOG_EDITOR, $EDITOR or $VISUAL, falling
back to nano, then vi. A missing file is first created with the defaults.`,
	Example: `  EDITOR=nano decimalog config edit

See Also: decimalog config set, decimalog doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value, ok := currentConfig.Get(key)
	if !ok {
		return unknownKeyError(key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if !config.IsKey(key) {
		return unknownKeyError(key)
	}

	path := config.FileUsed()
	cfg, err := config.ReadFile(path)
	if err != nil {
		return dlerrors.NewConfigError(err)
	}

	if err := cfg.Set(key, value); err != nil {
		return dlerrors.NewUserError(invalidConfig(err), "Run: decimalog config set --help")
	}
	if key == "folder" {
		if err := paths.CheckDir(value); err != nil {
			return dlerrors.NewUserError(invalidConfig(err), "Choose a directory path for folder")
		}
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return dlerrors.NewUserError(invalidConfig(errors.Join(errs...)), "Run: decimalog config set --help")
	}

	if err := writeConfig(path, cfg); err != nil {
		return err
	}

	cliLogger(cmd).Info("updated %s", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(listFormat) {
	case "yaml", "yml":
		data, err = yaml.Marshal(currentConfig)
	case "toml":
		data, err = toml.Marshal(currentConfig)
	default:
		return dlerrors.NewUserError(
			errors.Newf("unsupported format %q", listFormat),
			"Use --format yaml or --format toml")
	}
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.FileUsed()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(path, config.Default()); err != nil {
			return err
		}
		cliLogger(cmd).Info("created %s with defaults", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	if err := editor.Open(path, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		return dlerrors.NewSystemError(err, "Set $EDITOR to an installed editor")
	}
	return nil
}

// writeConfig atomically writes cfg to path, creating its directory.
func writeConfig(path string, cfg *config.Config) error {
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return dlerrors.NewSystemError(err, "Check that the config directory is writable")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return dlerrors.NewSystemError(errors.Wrap(err, "writing config"), "Check that the config directory is writable")
	}
	return nil
}

// invalidConfig marks err as ErrInvalidConfig while keeping its own chain
// reachable through errors.Is.
func invalidConfig(err error) error {
	return fmt.Errorf("%w: %w", dlerrors.ErrInvalidConfig, err)
}

func unknownKeyError(key string) error {
	return dlerrors.NewUserError(
		errors.Wrapf(dlerrors.ErrUnknownKey, "%q", key),
		"Valid keys: "+strings.Join(config.Keys, ", "))
}
