package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "hookrt", cmd.Use)
	assert.Contains(t, cmd.Long, "component trees")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"render", "test", "trace", "play", "version"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "version")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)

	_, _, err = execute(t, "--log-format", "yaml", "version")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
}

func TestConfigFlag(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "--config", "/nonexistent/hookrt.cue", "version")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, ExitCode(err))
		assert.Contains(t, err.Error(), "failed to load config")
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "hookrt.cue", "max_steps: -1\n")
		_, _, err := execute(t, "--config", path, "version")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, ExitCode(err))
	})

	t.Run("quota from config", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "hookrt.cue", "max_steps: 2\n")
		_, _, err := execute(t, "--config", path, "render", "counter", "--do", "click:button")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, ExitCode(err))
		assert.Contains(t, err.Error(), "exceeded max steps quota")
	})
}

func TestRootOptionsLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &RootOptions{Verbose: true, LogFormat: "json"}
	logger := opts.Logger(buf)

	logger.Debug("hello", "k", "v")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "expected JSON log line, got %q", buf.String())
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(tt.level, "text", &bytes.Buffer{})
			assert.True(t, logger.Enabled(context.Background(), tt.want))
			if tt.want > slog.LevelDebug {
				assert.False(t, logger.Enabled(context.Background(), tt.want-1))
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hookrt 0.1.0 (trace schema v1)\n", out)

	out, _, err = execute(t, "--format", "json", "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"runtime": "0.1.0"`)
	assert.Contains(t, out, `"trace": "1"`)
}
