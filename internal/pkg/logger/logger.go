// Package logger builds the application's structured slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// New returns a JSON logger writing to w at the given level name.
// Unknown level names fall back to INFO; the parse error is returned alongside
// the usable logger so callers can report it.
func New(w io.Writer, levelName string, attrs ...any) (*slog.Logger, error) {
	level, err := ParseLevel(levelName)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(attrs...), err
}

// ParseLevel converts a level name to slog.Level. Empty means INFO.
func ParseLevel(levelName string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelName)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "", "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s (defaulting to INFO)", levelName)
	}
}
