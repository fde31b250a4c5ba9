// Package config loads the runtime configuration from a CUE file unified
// with an embedded schema that carries the defaults.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/hookrt/internal/engine"
)

//go:embed schema.cue
var schemaSource string

// Config is the decoded configuration.
type Config struct {
	MaxSteps int         `json:"max_steps"`
	Session  string      `json:"session"`
	Log      LogConfig   `json:"log"`
	Trace    TraceConfig `json:"trace"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// TraceConfig configures the trace store.
type TraceConfig struct {
	DB string `json:"db"`
}

// Default returns the schema defaults.
func Default() *Config {
	cfg, err := Parse(nil, "default.cue")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads and validates the CUE file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse unifies src with the schema, checks that the result is concrete
// and decodes it. filename is used in error positions.
func Parse(src []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %s", filename, cueerrors.Details(err, nil))
	}

	value := def.Unify(user)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid config %s: %s", filename, cueerrors.Details(err, nil))
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// SlogLevel maps Log.Level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RootOptions returns the engine options the configuration implies.
func (c *Config) RootOptions() []engine.RootOption {
	opts := []engine.RootOption{engine.WithMaxSteps(c.MaxSteps)}
	if c.Session != "" {
		opts = append(opts, engine.WithSession(c.Session))
	}
	return opts
}
