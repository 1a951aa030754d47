package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Log one record per severity",
	Long: `Log one record at each severity, TRACE through CRITICAL, followed by an
exception record, then print the paths of the files written.

Records below the configured level are suppressed; use --level trace to see
all of them.`,
	Example: `  # Every severity, in color when the console supports it
  decimalog demo --level trace --color always

See Also: decimalog emit`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	l, err := setupFileLogging(cmd)
	if err != nil {
		return err
	}
	defer l.Close()

	log := l.Named("decimalog.demo")
	log.Trace("entering demo with %d records queued", 7)
	log.Debug("resolved folder %s", currentConfig.Folder)
	log.Info("service started")
	log.With("mount", "/var").Warning("disk at %d%%", 91)
	log.Error("request failed after %d retries", 3)
	log.Critical("shutting down")
	log.Exception(errors.New("connection reset by peer"), "upstream call failed")

	files := l.Files()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "log:   %s\n", files.Log)
	fmt.Fprintf(out, "jsonl: %s\n", files.JSONL)
	return nil
}
