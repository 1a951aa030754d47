package logging

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ColorMode controls whether console output carries ANSI color codes.
type ColorMode string

const (
	// ColorAuto colors output only when writing to a terminal that accepts it.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces color codes regardless of the destination.
	ColorAlways ColorMode = "always"
	// ColorNever disables color codes.
	ColorNever ColorMode = "never"
)

// ParseColorMode converts s to a ColorMode. The empty string means ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", &ConfigurationError{Field: "color", Value: s}
	}
}

// Enabled reports whether the mode produces color when writing to w.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return SupportsColor(w)
	}
}

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if the given writer supports ANSI color codes.
// It returns false if:
//   - The writer is not a TTY
//   - The NO_COLOR environment variable is set
//   - The TERM environment variable is set to "dumb"
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	// Respect NO_COLOR standard (https://no-color.org)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return isTTY
}
