// Package logging builds the charmbracelet/log loggers used by every
// command, optionally teeing into a size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/t2048/internal/config"
)

// Logger is a configured logger and the file it may be writing to.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to console (may be nil) and, when
// cfg.File is set, to a rotating file. With neither, output is discarded.
func New(cfg config.LogConfig, prefix string, console io.Writer) (*Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	var file *lumberjack.Logger
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		writers = append(writers, file)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})

	return &Logger{Logger: logger, file: file}, nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Warner returns a callback that logs errors at warn level with msg.
func (l *Logger) Warner(msg string, keyvals ...any) func(error) {
	return func(err error) {
		l.Warn(msg, append(append([]any(nil), keyvals...), "error", err)...)
	}
}
