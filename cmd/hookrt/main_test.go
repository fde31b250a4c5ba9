package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hookrt/internal/cli"
)

func TestRunVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, run(&out, &errOut, []string{"version"}))
	assert.Contains(t, out.String(), "hookrt ")
}

func TestRunExitCode(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(&out, &errOut, []string{"render", "nope"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitCommandError, cli.ExitCode(err))
}
