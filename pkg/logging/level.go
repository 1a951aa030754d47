package logging

import (
	"log/slog"
	"strings"
	"sync"
)

// Severity levels. slog.LevelDebug is -4; lower values are more verbose.
const (
	// LevelTrace is the ultra-verbose level below Debug, for -vvv output.
	LevelTrace slog.Level = slog.LevelDebug - 4 // -8

	LevelDebug   = slog.LevelDebug
	LevelInfo    = slog.LevelInfo
	LevelWarning = slog.LevelWarn
	LevelError   = slog.LevelError

	// LevelCritical sits above Error; slog has no native equivalent.
	LevelCritical slog.Level = slog.LevelError + 4 // 12
)

// Level-name table shared by every handler in the process. The built-in
// names differ from slog's ("WARNING" rather than "WARN") to match the
// conventional severity labels.
var (
	levelMu    sync.RWMutex
	levelNames = map[slog.Level]string{
		LevelDebug:   "DEBUG",
		LevelInfo:    "INFO",
		LevelWarning: "WARNING",
		LevelError:   "ERROR",
	}

	registerOnce sync.Once
)

// severities maps levels to the classic numeric severities (TRACE=5 ...
// CRITICAL=50) used by tooling that predates slog.
var severities = map[slog.Level]int{
	LevelTrace:    5,
	LevelDebug:    10,
	LevelInfo:     20,
	LevelWarning:  30,
	LevelError:    40,
	LevelCritical: 50,
}

// RegisterLevels adds TRACE and CRITICAL to the level-name table.
// It is safe to call any number of times; only the first call has an effect.
// Entry points should call it once at startup; Setup calls it as well.
func RegisterLevels() {
	registerOnce.Do(func() {
		AddLevelName(LevelTrace, "TRACE")
		AddLevelName(LevelCritical, "CRITICAL")
	})
}

// AddLevelName associates name with level in the level-name table,
// replacing any previous name.
func AddLevelName(level slog.Level, name string) {
	levelMu.Lock()
	defer levelMu.Unlock()
	levelNames[level] = strings.ToUpper(name)
}

// LevelName returns the registered name for level. Levels without a
// registered name use slog's notation, e.g. "DEBUG-4" or "INFO+2".
func LevelName(level slog.Level) string {
	levelMu.RLock()
	name, ok := levelNames[level]
	levelMu.RUnlock()
	if ok {
		return name
	}
	return level.String()
}

// ParseLevel converts a level name to a slog.Level. Matching is
// case-insensitive and surrounding whitespace is ignored. slog's "WARN" is
// not accepted.
//
// Unrecognized names return a *ConfigurationError.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	default:
		return 0, &ConfigurationError{Field: "level", Value: s}
	}
}

// LevelNames returns the accepted level names in ascending severity.
func LevelNames() []string {
	return []string{"TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
}

// Severity returns the classic numeric severity for level, or 0 if level is
// not one of the six named levels.
func Severity(level slog.Level) int {
	return severities[level]
}

// LevelFromVerbosity maps a -v flag count to a level.
//
//	0 (or less) -> WARNING
//	1           -> INFO
//	2           -> DEBUG
//	3 or more   -> TRACE
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return LevelWarning
	case v == 1:
		return LevelInfo
	case v == 2:
		return LevelDebug
	default:
		return LevelTrace
	}
}
