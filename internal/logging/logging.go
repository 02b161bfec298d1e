// Copyright (c) 2025 Oleksii Marich
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging sets up the application log.
//
// The TUI owns the terminal, so logs go to a file under the data
// directory rather than stderr. Disabled logging yields a no-op logger
// so callers never branch on whether a log is configured.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File is the log destination. Required unless Writer is set.
	File string

	// Writer overrides File when non-nil. Used by tests.
	Writer io.Writer
}

// New creates a structured logger writing to the configured destination.
// The returned closer is nil when no file was opened.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := parseLevel(opts.Level)

	out := opts.Writer
	var closer io.Closer
	if out == nil {
		if opts.File == "" {
			return zerolog.Nop(), nil, nil
		}
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "aifriend").
		Logger()

	return log, closer, nil
}

// parseLevel maps a config string to a zerolog level, defaulting to info.
func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
