// Copyright (c) 2025 SynBalance
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// ParseLevel maps a config string to a pterm log level. Unknown values map to warn.
func ParseLevel(s string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "info":
		return pterm.LogLevelInfo
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelWarn
	}
}

// New builds the structured logger used across the CLI.
func New(level pterm.LogLevel, w io.Writer) *pterm.Logger {
	return pterm.DefaultLogger.
		WithLevel(level).
		WithWriter(w).
		WithTime(level <= pterm.LogLevelDebug)
}

// Discard returns a logger that drops everything; tests and library callers
// that do not care about logs use it.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)
}
