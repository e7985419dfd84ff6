// Package logging builds the slog logger used by the commands: a text
// handler on the terminal fanned out with an optional JSON file copy.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
)

// Options configures New.
type Options struct {
	Level    string    // debug, info, warn or error; empty means info
	JSONPath string    // when set, every record is also written here as JSON
	Writer   io.Writer // terminal output; nil means stderr
}

// Logger is a slog.Logger tagged with a run id. It owns the JSON file, if
// any, until Close.
type Logger struct {
	*slog.Logger
	RunID string

	file *os.File
}

// New creates a Logger for one run.
func New(opts Options) (*Logger, error) {
	var level slog.Level
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}
	l := &Logger{RunID: uuid.NewString()}
	if opts.JSONPath != "" {
		f, err := os.OpenFile(opts.JSONPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open json log: %w", err)
		}
		l.file = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...)).With("run_id", l.RunID)
	return l, nil
}

// Close releases the JSON file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
