package logging

import (
	"io"
	"log/slog"
	"testing"
)

// NewDiscard creates a logger that discards all output.
// Use this for quiet mode or when logging should be suppressed.
func NewDiscard() *Logger {
	return New(slog.DiscardHandler)
}

// testWriter adapts testing.TB to io.Writer for use with slog handlers.
type testWriter struct {
	t testing.TB
}

// Write implements io.Writer by logging to the test.
func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	// Trim trailing newline since t.Log adds its own
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a logger that writes uncolored console lines to the test's
// log output. Log messages appear only when the test fails or when running
// with -v. Every level, TRACE included, is captured.
func ForTest(t testing.TB) *Logger {
	t.Helper()
	RegisterLevels()
	return New(NewConsoleHandler(&testWriter{t: t}, &ConsoleHandlerOptions{
		Level: LevelTrace,
	})).Named(t.Name())
}

var _ io.Writer = (*testWriter)(nil)
