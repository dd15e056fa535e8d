package raycast

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with queries on any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for raycast and the pools its engines
// create. By default nothing is logged. Pass nil to restore the silent
// default.
//
// Log levels used by raycast:
//   - [slog.LevelDebug]: per-query details (strategy, chunks, hit triangle)
//   - [slog.LevelInfo]: engine lifecycle
//   - [slog.LevelWarn]: pool refused work and the query fell back to serial scanning
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by raycast.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
