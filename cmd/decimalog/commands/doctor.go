package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/decimalog/internal/config"
	"github.com/thoreinstein/decimalog/internal/doctor"
	dlerrors "github.com/thoreinstein/decimalog/internal/errors"
	"github.com/thoreinstein/decimalog/pkg/logging"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"create a missing log folder and tighten its permissions")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "quiet", "verbose")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and log file issues",
	Long: `Run diagnostic checks on the decimalog configuration and log files.

Checks:
  config-file       config.yaml parses, uses known keys and valid values
  log-folder        the log folder exists and is writable
  jsonl-integrity   every JSONL line is an object with timestamp, level,
                    name and message strings
  console-color     whether console output will be colored, and why

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

// newDoctorRunner registers the checks for cfg.
func newDoctorRunner(cfg *config.Config, console io.Writer) *doctor.Runner {
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(config.FileUsed()))
	runner.AddCheck(doctor.NewLogDirCheck(cfg.Folder))
	runner.AddCheck(doctor.NewJSONLCheck(logging.JSONLPath(cfg.Folder, cfg.Filename)))
	runner.AddCheck(doctor.NewColorCheck(logging.ColorMode(cfg.Color), console))
	return runner
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	runner := newDoctorRunner(currentConfig, cmd.ErrOrStderr())
	report := runner.Run()

	if doctorFix {
		fixes := runner.Fix()
		if !doctorQuiet && !doctorJSON {
			outputFixResults(cmd.OutOrStdout(), fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return dlerrors.NewExitError(errors.Wrap(dlerrors.ErrChecksFailed, "errors found"), dlerrors.ExitSystem)
	}
	if report.HasWarnings() {
		return dlerrors.NewExitError(errors.Wrap(dlerrors.ErrChecksFailed, "warnings found"), dlerrors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report)
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
		if showAll {
			if errs, ok := result.Details["errors"].([]string); ok {
				for _, e := range errs {
					fmt.Fprintf(w, "  - %s\n", e)
				}
			}
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func outputFixResults(w io.Writer, fixes []doctor.FixResult) {
	for _, fix := range fixes {
		if fix.Fixed {
			fmt.Fprintf(w, "fixed: %s: %s\n", fix.Path, fix.Description)
			continue
		}
		fmt.Fprintf(w, "not fixed: %s: %s", fix.Path, fix.Description)
		if fix.Error != nil {
			fmt.Fprintf(w, " (%v)", fix.Error)
		}
		fmt.Fprintln(w)
	}
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
