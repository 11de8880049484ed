// Package logx builds the slog logger shared by the commands.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"uaestocks/internal/config"
)

// New returns a logger writing to stdout, a rotated file, or both, and a
// closer for the file writer. Every record carries command and run_id.
func New(cfg config.Log, command string) (*slog.Logger, io.Closer, error) {
	var out io.Writer
	var closer io.Closer = nopCloser{}

	switch strings.ToLower(cfg.Output) {
	case "file", "both":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		fw := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		closer = fw
		out = fw
		if strings.EqualFold(cfg.Output, "both") {
			out = io.MultiWriter(os.Stdout, fw)
		}
	case "", "stdout":
		out = os.Stdout
	default:
		return nil, nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	return newLogger(out, cfg.Level, cfg.Format).With(
		slog.String("command", command),
		slog.String("run_id", uuid.NewString()),
	), closer, nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
