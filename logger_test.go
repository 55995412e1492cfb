package turtle

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
	"weak"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_Handle(t *testing.T) {
	h := nopHandler{}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
}

func TestNopHandler_WithAttrs(t *testing.T) {
	h := nopHandler{}
	got := h.WithAttrs([]slog.Attr{slog.String("key", "val")})
	if _, ok := got.(nopHandler); !ok {
		t.Errorf("nopHandler.WithAttrs() returned %T, want nopHandler", got)
	}
}

func TestNopHandler_WithGroup(t *testing.T) {
	h := nopHandler{}
	got := h.WithGroup("group")
	if _, ok := got.(nopHandler); !ok {
		t.Errorf("nopHandler.WithGroup() returned %T, want nopHandler", got)
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Default logger must be disabled at all levels.
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	SetLogger(custom)

	got := Logger()
	if got != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	// Verify output is captured.
	got.Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	// First set a real logger.
	SetLogger(slog.Default())

	// Then set nil to restore silence.
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

type loggingBackend struct {
	SoftwareBackend
	logger *slog.Logger
}

func (b *loggingBackend) SetLogger(l *slog.Logger) { b.logger = l }

func TestSetLoggerPropagatesToLiveCanvases(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	be := &loggingBackend{}
	c, err := New(8, 8, WithBackend(be))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if be.logger != Logger() {
		t.Error("New did not hand the current logger to the backend")
	}

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)
	if be.logger != custom {
		t.Error("SetLogger did not propagate to the live canvas backend")
	}

	c.Destroy()
	later := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(later)
	if be.logger != custom {
		t.Error("SetLogger reached a destroyed canvas")
	}
}

func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	own := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	be := &loggingBackend{}
	c, err := New(8, 8, WithBackend(be), WithLogger(own))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Destroy()

	SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if be.logger != own {
		t.Error("package SetLogger replaced a canvas-specific logger")
	}
	if !strings.Contains(buf.String(), "canvas created") {
		t.Errorf("expected construction log, got: %s", buf.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	// Concurrent readers.
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			// Exercise the logger. Must not panic.
			l.Debug("concurrent read")
		}()
	}

	// Concurrent writers.
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}

	wg.Wait()
}

func BenchmarkLoggerLoad(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		l := Logger()
		_ = l
	}
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	// Benchmark the hot path: calling a log method on a disabled logger.
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}

func isTracked(wp weak.Pointer[Canvas]) bool {
	liveMu.Lock()
	defer liveMu.Unlock()
	_, ok := live[wp]
	return ok
}

func newDroppedCanvas(t *testing.T) weak.Pointer[Canvas] {
	t.Helper()
	c, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	wp := weak.Make(c)
	if !isTracked(wp) {
		t.Fatal("canvas following the package logger is not tracked")
	}
	return wp
}

func TestDroppedCanvasIsCollected(t *testing.T) {
	wp := newDroppedCanvas(t)

	deadline := time.Now().Add(2 * time.Second)
	for wp.Value() != nil || isTracked(wp) {
		if time.Now().After(deadline) {
			t.Fatalf("canvas dropped without Destroy: collected=%v tracked=%v",
				wp.Value() == nil, isTracked(wp))
		}
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
}

func TestDestroyUntracks(t *testing.T) {
	c, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	wp := weak.Make(c)
	c.Destroy()
	if isTracked(wp) {
		t.Error("destroyed canvas is still tracked")
	}
}
