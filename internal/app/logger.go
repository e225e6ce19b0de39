package app

import (
	"fmt"
	"io"
	"log/slog"
)

func parseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", levelStr)
}

// newLogger creates an isolated slog.Logger writing to w. Unknown levels fall
// back to info; any format other than json is text.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	level, _ := parseLevel(levelStr)
	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
