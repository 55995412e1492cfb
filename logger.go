package turtle

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for turtle and its backends.
// By default, turtle produces no log output. Pass nil to restore silence.
//
// The logger is forwarded to the backend of every live canvas that was
// not created with WithLogger.
//
// Log levels used by turtle:
//   - [slog.LevelDebug]: construction, flush statistics, pipeline creation
//   - [slog.LevelInfo]: GPU backend attached to a shared device
//   - [slog.LevelWarn]: non-fatal issues (lazy pipeline creation, misuse)
//
// Example:
//
//	turtle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	liveMu.Lock()
	defer liveMu.Unlock()
	for wp := range live {
		if c := wp.Value(); c != nil {
			propagateLogger(c.backend, l)
		}
	}
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

func propagateLogger(b Backend, l *slog.Logger) {
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

// live tracks canvases that follow the package logger. Entries are weak so
// that a canvas dropped without Destroy can still be collected; its entry
// is removed by a cleanup once that happens.
var (
	liveMu sync.Mutex
	live   = map[weak.Pointer[Canvas]]struct{}{}
)

func track(c *Canvas) {
	wp := weak.Make(c)
	liveMu.Lock()
	live[wp] = struct{}{}
	liveMu.Unlock()
	runtime.AddCleanup(c, forget, wp)
}

func untrack(c *Canvas) {
	forget(weak.Make(c))
}

func forget(wp weak.Pointer[Canvas]) {
	liveMu.Lock()
	delete(live, wp)
	liveMu.Unlock()
}
