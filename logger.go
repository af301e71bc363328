package draw

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler reports every level as disabled, so replay and the backends
// never build log records until a logger is set.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr is read by every Replay and by backends while they render,
// possibly on other goroutines than the one calling SetLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger shared by Replay and every registered backend.
// Nil restores the silent default. It may be called while frames are being
// rendered.
//
// Records written:
//   - [slog.LevelDebug] "draw: replay": primitives and context switches per frame
//   - [slog.LevelDebug] "meshrender: frame": vertices, indices and draw ranges
//   - [slog.LevelDebug] "svg: document written": paths and bytes
//   - [slog.LevelWarn] "meshrender: primitive skipped": the tessellation error
//
// For example, to trace frames on stderr:
//
//	draw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set with SetLogger. Backends log through it
// rather than keeping their own.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
