package sl

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled always
// returns false so callers skip formatting work entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. Accessed atomically so SetLogger can
// run concurrently with logging from any worker goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by this package. By default no
// output is produced. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelInfo]: lifecycle events (pool resized)
//   - [slog.LevelWarn]: recoverable anomalies (a release of an unknown buffer id)
//
// internal/raster and internal/parallel sit below this package in the
// import graph (this package dispatches into them), so they cannot call
// back into Logger without a cycle; they stay silent and report anomalies
// up through their return values instead.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the currently configured logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
