package doctor

import (
	"bytes"
	"os"
	"testing"

	"github.com/thoreinstein/decimalog/pkg/logging"
)

func TestColorCheck_Run(t *testing.T) {
	tests := []struct {
		name       string
		mode       logging.ColorMode
		env        map[string]string
		wantStatus Severity
		wantMsg    string
	}{
		{"forced on", logging.ColorAlways, nil, SeverityPass, "color forced on"},
		{"disabled", logging.ColorNever, nil, SeverityInfo, "color disabled by configuration"},
		{"no color env", logging.ColorAuto, map[string]string{"NO_COLOR": "1"}, SeverityInfo, "color disabled by NO_COLOR"},
		{"dumb terminal", logging.ColorAuto, map[string]string{"TERM": "dumb"}, SeverityInfo, "color disabled by TERM=dumb"},
		{"not a terminal", logging.ColorAuto, nil, SeverityInfo, "color disabled: console is not a terminal"},
		{"invalid mode", "rainbow", nil, SeverityError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "")
			t.Setenv("TERM", "xterm")
			os.Unsetenv("NO_COLOR")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			result := NewColorCheck(tt.mode, &bytes.Buffer{}).Run()
			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (message: %s)", result.Status, tt.wantStatus, result.Message)
			}
			if tt.wantMsg != "" && result.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", result.Message, tt.wantMsg)
			}
		})
	}
}
