package editor

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEditor(t *testing.T) {
	tests := []struct {
		name      string
		decimalog string
		editor    string
		visual    string
		want      string
	}{
		{"decimalog editor wins", "micro", "nvim", "code", "micro"},
		{"EDITOR before VISUAL", "", "nvim", "code", "nvim"},
		{"VISUAL when EDITOR empty", "", "", "code", "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvEditor, tt.decimalog)
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			assert.Equal(t, tt.want, detectEditor())
		})
	}
}

func TestDetectEditor_Fallback(t *testing.T) {
	t.Setenv(EnvEditor, "")
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	assert.Equal(t, want, detectEditor())
}

func TestCommand_SplitsArguments(t *testing.T) {
	t.Setenv(EnvEditor, "code --wait")

	cmd, err := Command("/tmp/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "/tmp/config.yaml"}, cmd.Args)
}

func TestCommand_BlankEditor(t *testing.T) {
	t.Setenv(EnvEditor, "   ")

	_, err := Command("config.yaml")
	assert.ErrorIs(t, err, ErrNoEditor)
}

func TestOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "mock-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"editing $1\"\n"), 0o755))
	t.Setenv(EnvEditor, script)

	target := filepath.Join(dir, "config.yaml")
	var stdout bytes.Buffer
	require.NoError(t, Open(target, &stdout, &bytes.Buffer{}))
	assert.Equal(t, "editing "+target+"\n", stdout.String())
}

func TestOpen_MissingBinary(t *testing.T) {
	t.Setenv(EnvEditor, "non-existent-binary-12345")

	err := Open("config.yaml", &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}
