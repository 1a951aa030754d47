package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under each XDG base directory.
const AppName = "decimalog"

// ConfigFileName is the name of the configuration file inside ConfigDir.
const ConfigFileName = "config.yaml"

// ErrNotDirectory indicates a path that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func StateHome() string {
	return xdg.StateHome
}

// ConfigDir returns <ConfigHome>/decimalog.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// LogDir returns the default log folder, <StateHome>/decimalog/logs.
func LogDir() string {
	return filepath.Join(StateHome(), AppName, "logs")
}

// CheckDir reports whether path is usable as a directory: nil when it
// exists as a directory or does not exist yet, ErrNotDirectory when it is
// something else.
func CheckDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return errors.Wrapf(err, "stat %s", path)
	case !info.IsDir():
		return errors.Wrapf(ErrNotDirectory, "%s", path)
	default:
		return nil
	}
}
