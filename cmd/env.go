package cmd

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment variables read by Env.
const EnvPrefix = "KOMB"

// Env holds process options taken from the environment.
type Env struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	Workers   int    `envconfig:"WORKERS" default:"4"`
}

// LoadEnv reads KOMB_LOG_LEVEL, KOMB_LOG_FORMAT and KOMB_WORKERS.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, errors.Wrap(err, "invalid environment")
	}
	if env.Workers < 1 {
		return Env{}, errWorkersOutOfBounds
	}
	return env, nil
}

// NewLogger returns a logger writing to w as configured by env.
func NewLogger(env Env, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(env.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, errors.Newf("unknown log level %q", env.LogLevel)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(env.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, errors.Newf("unknown log format %q", env.LogFormat)
	}
}
