package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/decimalog/cmd"
)

func TestVersionCommand(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)

	assert.Equal(t,
		"decimalog version "+cmd.Version+"\n  commit: "+cmd.Commit+"\n  built:  "+cmd.Date+"\n",
		stdout)
}

func TestVersionFlag(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "decimalog version "+cmd.Version+"\n", stdout)
}
