// Package logger builds the slog logger shared by the command and the adapters.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	multi "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level and sinks
type Config struct {
	Level   string
	Verbose bool
	File    string
	Stderr  io.Writer
}

// Logger is a slog logger plus the file sink it may own
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *lumberjack.Logger
}

// New creates a logger that writes text to stderr and, when File is set, JSON to a
// rotating log file.
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose && level > slog.LevelDebug {
		level = slog.LevelDebug
	}

	l := &Logger{level: &slog.LevelVar{}}
	l.level.Set(level)

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: l.level}
	handlers := []slog.Handler{slog.NewTextHandler(stderr, opts)}

	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    16,
			MaxBackups: 4,
			MaxAge:     30,
			Compress:   true,
		}
		// The file sink always records debug detail
		handlers = append(handlers, slog.NewJSONHandler(l.file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	l.Logger = slog.New(multi.Fanout(handlers...))
	return l, nil
}

// Level reports the stderr level
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name to a slog level. An empty name means warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", name)
	}
}
