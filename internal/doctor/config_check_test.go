package doctor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigCheck_Run(t *testing.T) {
	tests := []struct {
		name       string
		content    *string
		wantStatus Severity
	}{
		{"missing file", nil, SeverityInfo},
		{"empty file", ptr(""), SeverityPass},
		{"valid file", ptr("version: 1\nlevel: debug\ncolor: never\n"), SeverityPass},
		{"syntax error", ptr("level: [unclosed\n"), SeverityError},
		{"type error", ptr("class_length: wide\n"), SeverityError},
		{"invalid level", ptr("level: verbose\n"), SeverityError},
		{"unknown key", ptr("level: info\nformat: json\n"), SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			result := NewConfigCheck(path).Run()
			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (message: %s)", result.Status, tt.wantStatus, result.Message)
			}
			if result.Name != "config-file" || result.Category != "config" {
				t.Errorf("unexpected name/category: %s/%s", result.Name, result.Category)
			}
		})
	}
}

func TestConfigCheck_ReportsEachInvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("level: loud\ncolor: rainbow\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	result := NewConfigCheck(path).Run()

	problems, _ := result.Details["errors"].([]string)
	if len(problems) != 2 {
		t.Errorf("expected 2 problems, got %v", result.Details["errors"])
	}
}

func ptr(s string) *string { return &s }
