package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/decimalog/pkg/logging"
)

var (
	emitName   string
	emitFields []string
)

func init() {
	emitCmd.Flags().StringVarP(&emitName, "name", "n", cliLoggerName,
		"logger name shown in every sink")
	emitCmd.Flags().StringArrayVarP(&emitFields, "with", "w", nil,
		"attach a key=value field (repeatable)")
	rootCmd.AddCommand(emitCmd)
}

var emitCmd = &cobra.Command{
	Use:   "emit <level> <message> [args...]",
	Short: "Log one record to every sink",
	Long: `Log one record to the console, the per-run log file and the JSONL file.

The message is a printf-style template. Remaining arguments fill its verbs;
arguments that read as integers, floats or true/false are passed as such.
A message without arguments is logged verbatim.`,
	Example: `  # Interpolated warning
  decimalog emit warning "disk at %d%%" 91

  # Named logger with structured fields
  decimalog emit info "request served" --name app.http --with status=200 --with path=/health

See Also: decimalog demo`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEmit,
}

func runEmit(cmd *cobra.Command, args []string) error {
	level, err := parseLevelArg(args[0])
	if err != nil {
		return err
	}
	fields, err := parseFields(emitFields)
	if err != nil {
		return err
	}

	l, err := setupFileLogging(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	msgArgs := make([]any, 0, len(args)-2)
	for _, a := range args[2:] {
		msgArgs = append(msgArgs, parseArg(a))
	}

	log := l.Named(emitName).With(fields...)
	log.Log(level, args[1], msgArgs...)

	if !log.Enabled(level) {
		cliLogger(cmd).Info("%s record suppressed by level %s", logging.LevelName(level), logging.LevelName(l.Level()))
	}
	return nil
}
