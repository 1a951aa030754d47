// Package paths resolves the locations decimalog reads and writes.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux, paths follow XDG conventions:
//
//	| Purpose     | Path                                   |
//	|-------------|----------------------------------------|
//	| Config file | $XDG_CONFIG_HOME/decimalog/config.yaml |
//	| Log folder  | $XDG_STATE_HOME/decimalog/logs         |
//
// macOS and Windows use the equivalents chosen by xdg.
package paths
