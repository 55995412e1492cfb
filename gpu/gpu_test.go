//go:build !nogpu

package gpu

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/render"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func openNoop(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	openDev, err := instance.EnumerateAdapters(nil)[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// hostProvider mimics a windowing host that shares its HAL device.
type hostProvider struct {
	render.NullDeviceHandle
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p hostProvider) HalDevice() any                        { return p.device }
func (p hostProvider) HalQueue() any                         { return p.queue }
func (p hostProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p hostProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

type formatter interface {
	Format() gputypes.TextureFormat
}

func TestNewBackendNilProvider(t *testing.T) {
	if _, err := NewBackend(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("NewBackend(nil) = %v, want ErrNilProvider", err)
	}
}

func TestNewBackendWithoutHALAccess(t *testing.T) {
	if _, err := NewBackend(render.NullDeviceHandle{}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("NewBackend(NullDeviceHandle) = %v, want ErrNoHALAccess", err)
	}
}

func TestNewBackendSurfaceFormat(t *testing.T) {
	device, queue := openNoop(t)
	tests := []struct {
		name   string
		format gputypes.TextureFormat
		want   gputypes.TextureFormat
	}{
		{"undefined falls back to BGRA8", gputypes.TextureFormatUndefined, gputypes.TextureFormatBGRA8Unorm},
		{"provider format", gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be, err := NewBackend(hostProvider{device: device, queue: queue, format: tt.format})
			if err != nil {
				t.Fatalf("NewBackend: %v", err)
			}
			if be.Name() != "gpu" {
				t.Errorf("Name() = %q, want gpu", be.Name())
			}
			f, ok := be.(formatter)
			if !ok {
				t.Fatal("backend does not report its format")
			}
			if f.Format() != tt.want {
				t.Errorf("Format() = %v, want %v", f.Format(), tt.want)
			}
		})
	}
}

func TestNewBackendWithDeviceNil(t *testing.T) {
	if _, err := NewBackendWithDevice(nil, nil, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewBackendWithDevice(nil) = %v, want ErrNilDevice", err)
	}
}

func TestCanvasOnSharedDevice(t *testing.T) {
	device, queue := openNoop(t)
	be, err := NewBackend(hostProvider{device: device, queue: queue, format: gputypes.TextureFormatBGRA8Unorm})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	c, err := turtle.New(100, 80, turtle.WithBackend(be))
	if err != nil {
		t.Fatalf("turtle.New: %v", err)
	}
	defer c.Destroy()

	c.PenDown()
	c.SetColor(1, 0, 0)
	c.SetSize(2)
	c.MoveTo(10, 10)
	c.LineTo(90, 70)

	frame, err := render.NewTextureTarget(device, 100, 80, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewTextureTarget: %v", err)
	}
	defer frame.Destroy()

	if err := c.Render(frame); err != nil {
		t.Fatalf("Render to texture: %v", err)
	}
	if err := c.Render(render.NewPixmapTarget(100, 80)); err != nil {
		t.Fatalf("Render to pixmap: %v", err)
	}
	if len(c.Pending()) != 0 {
		t.Error("pending segments after Render")
	}
}

func drawWithZeroSize(c *turtle.Canvas) error {
	c.SetSize(0)
	c.PenDown()
	c.MoveTo(1, 1)
	c.LineTo(5, 5)
	return c.Flush()
}

func TestWithLoggerStaysWithItsCanvas(t *testing.T) {
	orig := turtle.Logger()
	t.Cleanup(func() { turtle.SetLogger(orig) })

	device, queue := openNoop(t)
	var ownBuf, pkgBuf bytes.Buffer
	own := slog.New(slog.NewTextHandler(&ownBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	beA, err := NewBackendWithDevice(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewBackendWithDevice: %v", err)
	}
	a, err := turtle.New(16, 16, turtle.WithBackend(beA), turtle.WithLogger(own))
	if err != nil {
		t.Fatalf("turtle.New(a): %v", err)
	}
	defer a.Destroy()

	beB, err := NewBackendWithDevice(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewBackendWithDevice: %v", err)
	}
	b, err := turtle.New(16, 16, turtle.WithBackend(beB))
	if err != nil {
		t.Fatalf("turtle.New(b): %v", err)
	}
	defer b.Destroy()

	turtle.SetLogger(slog.New(slog.NewTextHandler(&pkgBuf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if err := drawWithZeroSize(a); err != nil {
		t.Fatalf("Flush(a): %v", err)
	}
	if err := drawWithZeroSize(b); err != nil {
		t.Fatalf("Flush(b): %v", err)
	}

	if got := strings.Count(ownBuf.String(), "gpu: skipping flush"); got != 1 {
		t.Errorf("canvas logger got %d backend skip records, want 1:\n%s", got, ownBuf.String())
	}
	if got := strings.Count(pkgBuf.String(), "gpu: skipping flush"); got != 1 {
		t.Errorf("package logger got %d backend skip records, want 1:\n%s", got, pkgBuf.String())
	}
}
