package commands

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	dlerrors "github.com/thoreinstein/decimalog/internal/errors"
	"github.com/thoreinstein/decimalog/pkg/logging"
)

// setupFileLogging runs logging.Setup with the effective configuration,
// sending console output to the command's stderr.
func setupFileLogging(cmd *cobra.Command) (*logging.Logger, error) {
	opts := currentConfig.Options()
	opts.Console = cmd.ErrOrStderr()

	l, err := logging.Setup(opts)
	if err != nil {
		return nil, dlerrors.FromSetup(err)
	}

	files := l.Files()
	cliLogger(cmd).Debug("writing %s and appending %s", files.Log, files.JSONL)
	return l, nil
}

// parseLevelArg parses a level argument for emit.
func parseLevelArg(s string) (slog.Level, error) {
	level, err := logging.ParseLevel(s)
	if err != nil {
		return 0, dlerrors.NewUserError(
			errors.Wrapf(dlerrors.ErrUnknownLevel, "%q", s),
			"Valid levels: "+strings.Join(logging.LevelNames(), ", "))
	}
	return level, nil
}

// parseArg converts a message argument to int64, float64 or bool when it
// reads as one, so "%d" and "%.1f" verbs format command-line values.
func parseArg(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// parseFields converts key=value pairs into alternating With arguments.
func parseFields(pairs []string) ([]any, error) {
	args := make([]any, 0, 2*len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, dlerrors.NewUserError(
				errors.Newf("invalid field %q", pair),
				"Use --with key=value")
		}
		args = append(args, key, parseArg(value))
	}
	return args, nil
}
