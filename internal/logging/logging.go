// Package logging configures the structured logger shared by envctl packages.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
)

// DebugEnv enables debug output when set to a true value.
const DebugEnv = "ENVCTL_DEBUG"

// New returns a text logger writing to w. Debug records are emitted only
// when debug is true.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// DebugFromEnv reports whether ENVCTL_DEBUG requests debug logging.
func DebugFromEnv() bool {
	v, ok := os.LookupEnv(DebugEnv)
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(v)
	return err == nil && enabled
}
