// Package logutil provides the slog plumbing shared by the library and the
// CLI: a zero-cost nop logger for components constructed without one, and
// helpers that build the stderr/file handlers the CLI wires up.
package logutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// nopHandler silently discards all log records. Enabled returns false so
// callers skip message formatting entirely, making disabled logging
// effectively free.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that discards everything.
func Nop() *slog.Logger { return slog.New(nopHandler{}) }

// OrNop returns l, or a nop logger when l is nil. Constructors call this so
// components never need nil checks before logging.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// Text returns a human-readable logger writing to w at the given level.
func Text(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// File returns a JSON logger appending to path, creating parent directories
// as needed. The returned closer owns the underlying file.
func File(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
