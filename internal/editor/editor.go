// Package editor launches the user's editor on the decimalog config file.
package editor

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// EnvEditor names an editor used only by decimalog. It takes precedence over
// $EDITOR and $VISUAL.
const EnvEditor = "DECIMALOG_EDITOR"

// ErrNoEditor is returned when the editor setting is blank after trimming.
var ErrNoEditor = errors.New("no editor configured")

// Open runs the editor on path with the process stdin and the given output
// streams, and waits for it to exit.
func Open(path string, stdout, stderr io.Writer) error {
	cmd, err := Command(path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Path)
	}
	return nil
}

// Command builds the editor invocation for path. The editor setting may
// carry arguments, as in EDITOR="code --wait".
func Command(path string) (*exec.Cmd, error) {
	fields := strings.Fields(detectEditor())
	if len(fields) == 0 {
		return nil, ErrNoEditor
	}
	args := append(fields[1:], path)
	return exec.Command(fields[0], args...), nil
}

// detectEditor returns the editor command line.
// Fallback chain: $DECIMALOG_EDITOR, $EDITOR, $VISUAL, nano, vi.
func detectEditor() string {
	for _, key := range []string{EnvEditor, "EDITOR", "VISUAL"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
