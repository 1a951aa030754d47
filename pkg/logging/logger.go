package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"
)

// ErrorOutput receives internal logging failures (a handler that cannot
// write, a value that panics while being formatted). Such failures are
// reported here and never returned to the code that logged.
var ErrorOutput io.Writer = os.Stderr

// Logger is a named logger with a fixed set of severity methods. Messages are
// printf-style templates: args are interpolated with fmt.Sprintf, and a
// message without args is used verbatim.
//
//	log := logging.Get("app.storage")
//	log.Warning("disk at %d%%", 91)
//
// A Logger is safe for concurrent use.
type Logger struct {
	name    string
	handler slog.Handler
	level   *slog.LevelVar
	files   *fileSet
}

// New wraps handler in a Logger named RootName. The logger's own threshold
// starts at LevelTrace, so filtering is left to the handler until SetLevel
// is called.
func New(handler slog.Handler) *Logger {
	level := new(slog.LevelVar)
	level.Set(LevelTrace)
	return &Logger{
		name:    RootName,
		handler: handler,
		level:   level,
	}
}

// root is the logger installed by Setup.
var root atomic.Pointer[Logger]

// setRoot installs l as the process-wide root logger and as slog's default.
func setRoot(l *Logger) {
	root.Store(l)
	slog.SetDefault(l.Slog())
}

// Default returns the root logger installed by Setup, or a logger over
// slog's default handler when Setup has not run.
func Default() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	return New(slog.Default().Handler())
}

// Get returns a logger with the given name that shares the root logger's
// handlers and threshold.
func Get(name string) *Logger {
	return Default().Named(name)
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Named returns a logger with the given name sharing l's handlers, threshold
// and attributes.
func (l *Logger) Named(name string) *Logger {
	if name == "" {
		name = RootName
	}
	c := *l
	c.name = name
	c.handler = l.handler.WithAttrs([]slog.Attr{slog.String(NameKey, name)})
	return &c
}

// Child returns a logger named "<l.Name()>.<suffix>". Children of the root
// logger are named suffix alone.
func (l *Logger) Child(suffix string) *Logger {
	if l.name == RootName {
		return l.Named(suffix)
	}
	return l.Named(l.name + "." + suffix)
}

// With returns a logger that adds the given key-value pairs or slog.Attrs to
// every record. They appear as " key=value" on the console and under
// "extra" in JSON.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	c := *l
	c.handler = slog.New(l.handler).With(args...).Handler()
	return &c
}

// SetLevel changes the effective threshold. For loggers from Setup the
// change applies to every logger sharing the root's handlers.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the effective threshold.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Enabled reports whether a record at level would be emitted.
func (l *Logger) Enabled(level slog.Level) bool {
	return level >= l.level.Level() && l.handler.Enabled(context.Background(), level)
}

// Handler returns the underlying slog handler.
func (l *Logger) Handler() slog.Handler {
	return l.handler
}

// Slog returns a *slog.Logger over the same handlers, for code that prefers
// structured key-value calls.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(l.handler)
}

// Trace logs at LevelTrace.
func (l *Logger) Trace(msg string, args ...any) {
	l.log(LevelTrace, nil, msg, args)
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, nil, msg, args)
}

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, nil, msg, args)
}

// Warning logs at LevelWarning.
func (l *Logger) Warning(msg string, args ...any) {
	l.log(LevelWarning, nil, msg, args)
}

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, nil, msg, args)
}

// Critical logs at LevelCritical.
func (l *Logger) Critical(msg string, args ...any) {
	l.log(LevelCritical, nil, msg, args)
}

// Exception logs at LevelError with err attached under ErrorKey.
// The JSON file renders it as "exception", including the stack trace when
// err carries one.
func (l *Logger) Exception(err error, msg string, args ...any) {
	l.log(LevelError, err, msg, args)
}

// Log logs at an arbitrary level.
func (l *Logger) Log(level slog.Level, msg string, args ...any) {
	l.log(level, nil, msg, args)
}

func (l *Logger) log(level slog.Level, err error, msg string, args []any) {
	if !l.Enabled(level) {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			fmt.Fprintf(ErrorOutput, "logging: dropped %s record from %s: %v\n", LevelName(level), l.name, p)
		}
	}()

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	// Skip runtime.Callers, log and the exported method.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if err != nil {
		r.AddAttrs(slog.Any(ErrorKey, err))
	}
	if herr := l.handler.Handle(context.Background(), r); herr != nil {
		fmt.Fprintf(ErrorOutput, "logging: %s: %v\n", l.name, herr)
	}
}

// Close releases the files opened by Setup. It is a no-op for loggers not
// created by Setup and safe to call more than once.
func (l *Logger) Close() error {
	if l.files == nil {
		return nil
	}
	return l.files.close()
}

// Files returns the paths of the files opened by Setup. Both are empty for
// loggers not created by Setup.
func (l *Logger) Files() Files {
	if l.files == nil {
		return Files{}
	}
	return l.files.paths
}
