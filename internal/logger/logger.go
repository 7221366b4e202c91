package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// New builds the process logger. Release mode emits JSON lines, everything
// else uses the human-readable text handler.
func New(mode, level string) *slog.Logger {
	return newWithWriter(os.Stdout, mode, level)
}

func newWithWriter(w io.Writer, mode, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if mode == gin.ReleaseMode {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
