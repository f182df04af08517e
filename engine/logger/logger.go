// Package logger holds the process-wide structured logger shared by every oxy-gl package.
// Nothing is logged until SetLogger is called.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs the logger used by oxy-gl. Passing nil restores the silent default.
// It is safe to call concurrently with logging from the context thread.
//
// Levels used:
//   - slog.LevelDebug: verbose driver notifications, reflection dumps
//   - slog.LevelInfo: context lifecycle, driver info messages, profiler output
//   - slog.LevelWarn: recoverable misuse (releasing an already released object)
//   - slog.LevelError: shader compile/link diagnostics, fatal context errors
//
// Parameters:
//   - l: the logger to install, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the currently installed logger.
//
// Returns:
//   - *slog.Logger: the active logger (never nil)
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
