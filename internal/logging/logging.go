package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a text slog.Logger writing to w and, when filePath is set, also
// appending to that file. A file that cannot be opened falls back to w only.
// The returned func closes the file and is safe to call when there is none.
func New(w io.Writer, filePath, level string) (*slog.Logger, func() error) {
	if w == nil {
		w = os.Stdout
	}
	closeFn := func() error { return nil }
	var fileErr error
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			w = io.MultiWriter(w, f)
			closeFn = f.Close
		} else {
			fileErr = err
		}
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	logger := slog.New(h)
	if fileErr != nil {
		logger.Error("failed to open log file", "path", filePath, "err", fileErr)
	}
	return logger, closeFn
}

// ParseLevel maps debug/info/warn/error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
