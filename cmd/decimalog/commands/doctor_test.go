package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlerrors "github.com/thoreinstein/decimalog/internal/errors"
)

// doctorJSONReport mirrors the fields of doctor --json the tests inspect.
type doctorJSONReport struct {
	Results []struct {
		Name     string         `json:"name"`
		Category string         `json:"category"`
		Status   string         `json:"status"`
		Details  map[string]any `json:"details"`
	} `json:"results"`
	Summary struct {
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	} `json:"summary"`
}

func TestDoctor_FreshInstall(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := execute(t, "doctor", "--folder", env.folder)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Summary:")
	assert.Contains(t, stdout, "0 warnings, 0 errors")
}

func TestDoctor_Verbose(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := execute(t, "doctor", "--folder", env.folder, "--verbose")
	require.NoError(t, err)
	for _, name := range []string{"config-file", "log-folder", "jsonl-integrity", "console-color"} {
		assert.Contains(t, stdout, name)
	}
}

func TestDoctor_JSON(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := execute(t, "doctor", "--folder", env.folder, "--json")
	require.NoError(t, err)

	var report doctorJSONReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Results, 4)
	assert.Equal(t, "config-file", report.Results[0].Name)
	assert.Equal(t, "info", report.Results[0].Status)
}

func TestDoctor_Quiet(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := execute(t, "doctor", "--folder", env.folder, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestDoctor_OutputFlagsAreExclusive(t *testing.T) {
	newTestEnv(t)

	_, _, err := execute(t, "doctor", "--json", "--quiet")
	assert.Error(t, err)
}

func TestDoctor_CorruptJSONL(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.folder, "app.jsonl"), []byte("not json\n"), 0o644))

	stdout, _, err := execute(t, "doctor", "--folder", env.folder)
	require.Error(t, err)
	assert.ErrorIs(t, err, dlerrors.ErrChecksFailed)
	assert.Equal(t, dlerrors.ExitSystem, dlerrors.Code(err))
	assert.Contains(t, stdout, "jsonl-integrity")
}

func TestDoctor_ReportsInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfigFile(t, "level: VERBOSE\n")

	stdout, _, err := execute(t, "doctor", "--folder", env.folder, "--json")
	require.Error(t, err)
	assert.Equal(t, dlerrors.ExitSystem, dlerrors.Code(err))

	var report doctorJSONReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "error", report.Results[0].Status)
	assert.Equal(t, 1, report.Summary.Errors)
}

func TestDoctor_FixCreatesFolder(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := execute(t, "doctor", "--folder", env.folder, "--fix")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fixed: "+env.folder)
	assert.DirExists(t, env.folder)
}

func TestDoctor_EmitThenCheck(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(t, "emit", "error", "boom", "--folder", env.folder)
	require.NoError(t, err)

	stdout, _, err := execute(t, "doctor", "--folder", env.folder, "--json")
	require.NoError(t, err)

	var report doctorJSONReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	for _, r := range report.Results {
		if r.Name == "jsonl-integrity" {
			assert.Equal(t, "pass", r.Status)
			assert.EqualValues(t, 1, r.Details["records"])
		}
	}
}
