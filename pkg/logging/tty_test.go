package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{
			name:  "NO_COLOR prevents color",
			env:   map[string]string{"NO_COLOR": "1"},
			isTTY: true,
			want:  false,
		},
		{
			name:  "empty NO_COLOR still prevents color",
			env:   map[string]string{"NO_COLOR": ""},
			isTTY: true,
			want:  false,
		},
		{
			name:  "TERM=dumb prevents color",
			env:   map[string]string{"TERM": "dumb"},
			isTTY: true,
			want:  false,
		},
		{
			name:  "non-TTY prevents color",
			env:   map[string]string{"TERM": "xterm-256color"},
			isTTY: false,
			want:  false,
		},
		{
			name:  "TTY with capable terminal",
			env:   map[string]string{"TERM": "xterm-256color"},
			isTTY: true,
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv registers restoration; Unsetenv then clears the value.
			t.Setenv("NO_COLOR", "")
			t.Setenv("TERM", "")
			os.Unsetenv("NO_COLOR")

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got := supportsColor(tt.isTTY)
			if got != tt.want {
				t.Errorf("supportsColor() = %v, want %v (env=%v, isTTY=%v)", got, tt.want, tt.env, tt.isTTY)
			}
		})
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY should return false for a bytes.Buffer")
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"", ColorAuto},
		{"auto", ColorAuto},
		{"ALWAYS", ColorAlways},
		{" never ", ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if err != nil {
				t.Fatalf("ParseColorMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorMode_Invalid(t *testing.T) {
	_, err := ParseColorMode("rainbow")
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "color" || cfgErr.Value != "rainbow" {
		t.Errorf("unexpected error details: %#v", err)
	}
}

func TestColorMode_Enabled(t *testing.T) {
	var buf bytes.Buffer

	if !ColorAlways.Enabled(&buf) {
		t.Error("always should color a non-terminal writer")
	}
	if ColorNever.Enabled(&buf) {
		t.Error("never should not color")
	}
	if ColorAuto.Enabled(&buf) {
		t.Error("auto should not color a non-terminal writer")
	}
}
