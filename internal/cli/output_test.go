package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hookrt/internal/engine"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), ExitFailure},
		{"exit error", NewExitError(ExitCommandError, "bad flag"), ExitCommandError},
		{"wrapped exit error", fmt.Errorf("run: %w", WrapExitError(ExitCommandError, "open", errors.New("missing"))), ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	cause := errors.New("no such file")
	err := WrapExitError(ExitCommandError, "failed to open trace database", cause)
	assert.Equal(t, "failed to open trace database: no such file", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad flag", NewExitError(ExitCommandError, "bad flag").Error())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"runtime error", fmt.Errorf("flush: %w", &engine.RuntimeError{Code: engine.ErrCodeKeyCollision}), "KEY_COLLISION"},
		{"quota", &engine.StepsExceededError{Session: "s", Steps: 3, Limit: 2}, "E_QUOTA"},
		{"other", errors.New("boom"), "E_RENDER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err, "E_RENDER"))
		})
	}
}

func TestOutputFormatter(t *testing.T) {
	t.Run("json envelope", func(t *testing.T) {
		var out bytes.Buffer
		f := &OutputFormatter{Format: "json", Writer: &out}
		require.NoError(t, f.Error("HOOK_ORDER", "hook order changed", map[string]string{"during": "mount"}))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "HOOK_ORDER", resp.Error.Code)
	})

	t.Run("text hides details unless verbose", func(t *testing.T) {
		var out bytes.Buffer
		f := &OutputFormatter{Format: "text", Writer: &out}
		require.NoError(t, f.Error("E_QUOTA", "too many steps", "limit 2"))
		assert.Equal(t, "Error [E_QUOTA]: too many steps\n", out.String())

		out.Reset()
		f.Verbose = true
		require.NoError(t, f.Error("E_QUOTA", "too many steps", "limit 2"))
		assert.Equal(t, "Error [E_QUOTA]: too many steps\nDetails: limit 2\n", out.String())
	})

	t.Run("verbose log goes to err writer", func(t *testing.T) {
		var out, diag bytes.Buffer
		f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &diag, Verbose: true}
		f.VerboseLog("click %s", "#inc")
		assert.Empty(t, out.String())
		assert.Equal(t, "click #inc\n", diag.String())
	})
}
