package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	want := &Config{
		MaxSteps: 1000,
		Log:      LogConfig{Level: "info", Format: "text"},
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
max_steps: 50
session:   "demo"
log: level: "debug"
trace: db: "trace.db"
`), "hookrt.cue")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxSteps)
	assert.Equal(t, "demo", cfg.Session)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "trace.db", cfg.Trace.DB)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Len(t, cfg.RootOptions(), 2)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", `max_stpes: 10`},
		{"negative max_steps", `max_steps: -1`},
		{"bad level", `log: level: "loud"`},
		{"bad format", `log: format: "xml"`},
		{"wrong type", `trace: db: 3`},
		{"syntax", `max_steps: {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.cue")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad.cue")
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hookrt.cue")
	require.NoError(t, os.WriteFile(path, []byte(`log: format: "json"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 1000, cfg.MaxSteps)
	assert.Len(t, cfg.RootOptions(), 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestSlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg := &Config{Log: LogConfig{Level: level}}
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
