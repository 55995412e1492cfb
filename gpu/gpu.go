//go:build !nogpu

// Package gpu constructs the hardware backend for turtle canvases.
//
// The backend renders on a device owned by the host application (e.g.
// gogpu). It never creates its own GPU instance, so the canvas can be
// composited straight into the host's swapchain texture.
//
// Usage:
//
//	be, err := gpu.NewBackend(provider) // gpucontext.DeviceProvider with HAL access
//	if err != nil {
//		return err
//	}
//	canvas, err := turtle.New(800, 600, turtle.WithBackend(be))
//
// Without a GPU, omit WithBackend and the software backend is used.
package gpu

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/turtle"
	gpuimpl "github.com/gogpu/turtle/internal/gpu"
	"github.com/gogpu/turtle/render"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilProvider is returned by NewBackend for a nil provider.
	ErrNilProvider = errors.New("gpu: nil device provider")

	// ErrNoHALAccess is returned when the provider does not expose its
	// wgpu HAL device and queue.
	ErrNoHALAccess = render.ErrNoHALAccess

	// ErrNilDevice is returned by NewBackendWithDevice for a nil device or queue.
	ErrNilDevice = gpuimpl.ErrNilDevice
)

// NewBackend returns a backend rendering on the provider's device.
//
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue, as gogpu does. The composite pipeline is
// prepared for the provider's surface format; BGRA8Unorm is assumed when
// the provider reports none.
func NewBackend(provider render.DeviceHandle) (turtle.Backend, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	device, queue, err := render.HALDevice(provider)
	if err != nil {
		return nil, err
	}
	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	info := provider.AdapterInfo()
	turtle.Logger().Info("gpu: backend attached to shared device",
		"adapter", info.Name, "type", info.Type, "format", format)
	return gpuimpl.NewBackend(device, queue, format), nil
}

// NewBackendWithDevice returns a backend rendering on device and queue
// directly. format is the display target format to prepare for; other
// formats are supported on first use.
func NewBackendWithDevice(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (turtle.Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return gpuimpl.NewBackend(device, queue, format), nil
}
