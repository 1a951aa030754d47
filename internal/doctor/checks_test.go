package doctor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLogDirCheck_Metadata(t *testing.T) {
	c := NewLogDirCheck(t.TempDir())
	if got := c.Name(); got != "log-folder" {
		t.Errorf("Name() = %q, want %q", got, "log-folder")
	}
	if got := c.Category(); got != "filesystem" {
		t.Errorf("Category() = %q, want %q", got, "filesystem")
	}
}

func TestLogDirCheck_Run(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		setup       func() string
		wantStatus  Severity
		wantFixable bool
	}{
		{
			name: "writable directory",
			setup: func() string {
				dir := filepath.Join(tempDir, "writable")
				if err := os.Mkdir(dir, 0o755); err != nil {
					t.Fatal(err)
				}
				return dir
			},
			wantStatus: SeverityPass,
		},
		{
			name: "missing directory",
			setup: func() string {
				return filepath.Join(tempDir, "missing", "logs")
			},
			wantStatus:  SeverityInfo,
			wantFixable: true,
		},
		{
			name: "file instead of directory",
			setup: func() string {
				path := filepath.Join(tempDir, "file")
				if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
					t.Fatal(err)
				}
				return path
			},
			wantStatus: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLogDirCheck(tt.setup())
			result := c.Run()

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v (message: %s)", result.Status, tt.wantStatus, result.Message)
			}
			if result.Fixable != tt.wantFixable {
				t.Errorf("Fixable = %v, want %v", result.Fixable, tt.wantFixable)
			}
			if c.CanFix() != tt.wantFixable {
				t.Errorf("CanFix() = %v, want %v", c.CanFix(), tt.wantFixable)
			}
		})
	}
}

func TestLogDirCheck_WorldWritable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix permissions not applicable on Windows")
	}

	dir := filepath.Join(t.TempDir(), "open")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Chmod bypasses the umask applied by Mkdir.
	if err := os.Chmod(dir, 0o777); err != nil {
		t.Fatal(err)
	}

	c := NewLogDirCheck(dir)
	result := c.Run()

	if result.Status != SeverityWarning {
		t.Errorf("Status = %v, want warning", result.Status)
	}
	if !result.Fixable {
		t.Error("world-writable directory should be fixable")
	}
	if result.FixHint != "chmod 755 "+dir {
		t.Errorf("FixHint = %q", result.FixHint)
	}
}

func TestIsDirectoryWritable(t *testing.T) {
	dir := t.TempDir()

	writable, err := isDirectoryWritable(dir)
	if err != nil || !writable {
		t.Fatalf("isDirectoryWritable(%q) = %v, %v", dir, writable, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("probe file was not cleaned up: %v", entries)
	}
}

func TestFormatPermissions(t *testing.T) {
	tests := []struct {
		mode os.FileMode
		want string
	}{
		{0o644, "0644"},
		{0o755, "0755"},
		{os.ModeDir | 0o700, "0700"},
	}
	for _, tt := range tests {
		if got := formatPermissions(tt.mode); got != tt.want {
			t.Errorf("formatPermissions(%v) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
