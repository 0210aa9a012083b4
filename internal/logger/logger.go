// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

// Package logger provides a thin wrapper around zerolog.Logger used
// throughout the access client.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
package logger

import (
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper constructors without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger for the given role label (e.g. "cli", "test").
//
// Output goes to stderr through zerolog's console writer so that log lines
// never mix with command output on stdout. The level is Info by default and
// Debug when verbose is set. Every entry carries a "role" field, a timestamp
// and a "func" caller field recording the fully-qualified function name.
func New(role string, verbose bool) *Logger {
	return NewWithOutput(os.Stderr, role, verbose)
}

// NewWithOutput is New with an explicit output writer. Used by tests to
// capture log output.
func NewWithOutput(out io.Writer, role string, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(zerolog.ConsoleWriter{Out: out}).
		Level(level).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}
