// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the diagnostics logger. Stage progress lines go
// to stdout through an io.Writer; the logger writes to stderr so the two
// never interleave in piped output.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/anatomy-assets/pkg/types"
)

const (
	DefaultLevel  = "warn"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewLogger returns a logger writing to stderr.
func NewLogger(cfg types.LogConfig) (*zap.Logger, error) {
	return New(cfg, os.Stderr)
}

// New returns a logger writing to w at cfg.Level in cfg.Format.
func New(cfg types.LogConfig, w io.Writer) (*zap.Logger, error) {
	levelName := cfg.Level
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := zap.ParseAtomicLevel(strings.ToLower(levelName))
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var enc zapcore.Encoder
	switch cfg.Format {
	case "", FormatConsole:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(ec)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q (want console or json)", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
