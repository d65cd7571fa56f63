// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging exposes the process-wide logger used by the backoffice.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below rather than reaching for L directly.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "backoffice"})

// Configure sets the level and output of L. An unknown level falls back to
// info and is reported as an error.
func Configure(level string, w io.Writer) error {
	if w != nil {
		L.SetOutput(w)
	}
	if level == "" {
		level = "info"
	}
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		L.SetLevel(clog.InfoLevel)
		return fmt.Errorf("unknown log level %q: %w", level, err)
	}
	L.SetLevel(lvl)
	return nil
}

// OpenFile opens (or creates) an append-only log file, creating its parent
// directory. The caller owns the returned file.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
