//go:build !nogpu

package gpu

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// logSink holds the logger of one Backend. The backend's renderers share
// it, so a logger swapped by SetLogger reaches them too. Accessed
// atomically because turtle.SetLogger may run on another goroutine.
type logSink struct {
	p atomic.Pointer[slog.Logger]
}

func newLogSink() *logSink {
	s := &logSink{}
	s.set(nil)
	return s
}

// logger returns the current logger. A nil sink is silent.
func (s *logSink) logger() *slog.Logger {
	if s == nil {
		return slog.New(nopHandler{})
	}
	return s.p.Load()
}

// set replaces the logger. Nil restores silence.
func (s *logSink) set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	s.p.Store(l)
}
