package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBaseDirs(t *testing.T) {
	tests := []struct {
		name string
		fn   func() string
	}{
		{"ConfigHome", ConfigHome},
		{"StateHome", StateHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn()
			if got == "" {
				t.Fatalf("%s() returned empty string", tt.name)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("%s() = %q, want absolute path", tt.name, got)
			}
			if got != tt.fn() {
				t.Errorf("%s() not consistent across calls", tt.name)
			}
		})
	}
}

func TestAppPaths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigDir", ConfigDir(), filepath.Join(ConfigHome(), "decimalog")},
		{"LogDir", LogDir(), filepath.Join(StateHome(), "decimalog", "logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates new directory with default perms", func(t *testing.T) {
		path := filepath.Join(tmpDir, "new-dir")
		if err := EnsureDir(path, 0); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if !info.IsDir() {
			t.Errorf("expected directory, got file")
		}
		if info.Mode().Perm() != DefaultDirPerm {
			t.Errorf("expected perm %o, got %o", DefaultDirPerm, info.Mode().Perm())
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "parent", "child", "grandchild")
		if err := EnsureDir(path, 0o755); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("expected perm 0755, got %o", info.Mode().Perm())
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing")
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}

		if err := EnsureDir(path, 0o700); err != nil {
			t.Errorf("EnsureDir failed on existing directory: %v", err)
		}

		// MkdirAll does not change permissions of existing directories.
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("expected original perm 0755 to be preserved, got %o", info.Mode().Perm())
		}
	})
}

func TestCheckDir(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"existing directory", tmpDir, nil},
		{"missing path", filepath.Join(tmpDir, "missing"), nil},
		{"regular file", file, ErrNotDirectory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDir(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CheckDir(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckDir(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
