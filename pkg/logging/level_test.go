package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestLevelOrdering(t *testing.T) {
	ordered := []slog.Level{LevelTrace, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("level %v should be below %v", ordered[i-1], ordered[i])
		}
	}
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace should be lower than slog.LevelDebug")
	}
}

func TestRegisterLevels_Idempotent(t *testing.T) {
	RegisterLevels()
	RegisterLevels()

	if got := LevelName(LevelTrace); got != "TRACE" {
		t.Errorf("LevelName(LevelTrace) = %q, want TRACE", got)
	}
	if got := LevelName(LevelCritical); got != "CRITICAL" {
		t.Errorf("LevelName(LevelCritical) = %q, want CRITICAL", got)
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarning, "WARNING"},
		{LevelError, "ERROR"},
		{LevelCritical, "CRITICAL"},
		{LevelInfo + 2, "INFO+2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := LevelName(tt.level); got != tt.want {
				t.Errorf("LevelName(%d) = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestAddLevelName(t *testing.T) {
	dump := LevelTrace - 4
	AddLevelName(dump, "dump")
	if got := LevelName(dump); got != "DUMP" {
		t.Errorf("LevelName(dump) = %q, want DUMP", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"Debug", LevelDebug},
		{"INFO", LevelInfo},
		{" info ", LevelInfo},
		{"WARNING", LevelWarning},
		{"warning", LevelWarning},
		{"error", LevelError},
		{"CRITICAL", LevelCritical},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if err != nil {
				t.Fatalf("ParseLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	for _, input := range []string{"VERBOSE", "", "5", "FATAL", "WARN", "warn"} {
		_, err := ParseLevel(input)
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("ParseLevel(%q) error = %v, want ErrConfiguration", input, err)
			continue
		}
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("ParseLevel(%q) error is not a *ConfigurationError", input)
		}
		if cfgErr.Field != "level" || cfgErr.Value != input {
			t.Errorf("ConfigurationError = %+v, want field level value %q", cfgErr, input)
		}
	}
}

func TestLevelNames_RoundTrip(t *testing.T) {
	for _, name := range LevelNames() {
		level, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", name, err)
		}
		if got := LevelName(level); got != name {
			t.Errorf("LevelName(ParseLevel(%q)) = %q", name, got)
		}
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  int
	}{
		{LevelTrace, 5},
		{LevelDebug, 10},
		{LevelInfo, 20},
		{LevelWarning, 30},
		{LevelError, 40},
		{LevelCritical, 50},
		{LevelInfo + 1, 0},
	}
	for _, tt := range tests {
		if got := Severity(tt.level); got != tt.want {
			t.Errorf("Severity(%v) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, LevelWarning},
		{0, LevelWarning},
		{1, LevelInfo},
		{2, LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		got := LevelFromVerbosity(tt.verbosity)
		if got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}
