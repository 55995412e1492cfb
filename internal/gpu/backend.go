//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/internal/raster"
	"github.com/gogpu/turtle/render"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilDevice is returned by Init when the backend has no device or queue.
	ErrNilDevice = errors.New("gpu: nil hal device or queue")

	// errNotReady is returned by operations on a backend that was never
	// initialized or has been closed.
	errNotReady = errors.New("gpu: backend not initialized or already closed")
)

// Backend renders a turtle canvas with a wgpu hal device. It implements
// turtle.Backend.
//
// The device and queue are borrowed; Close releases only the resources the
// backend created.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	log   *logSink
	sub   submitter
	surf  *surface
	lines *lineRenderer
	comp  *compositor

	initialized bool
	closed      bool
}

// NewBackend returns a backend that renders with device and queue.
// format is the display target format the compositor is prepared for at
// Init; targets of other formats get their own pipeline on first use.
// Resources are allocated by Init.
func NewBackend(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *Backend {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &Backend{
		device: device,
		queue:  queue,
		format: format,
		log:    newLogSink(),
		sub:    submitter{device: device, queue: queue},
	}
}

// Name returns "gpu".
func (b *Backend) Name() string { return "gpu" }

// SetLogger routes the logging of this backend and its renderers to l.
// Other backends are unaffected. It is called by the turtle package when a
// logger is configured.
func (b *Backend) SetLogger(l *slog.Logger) { b.log.set(l) }

// Format returns the target format prepared at Init.
func (b *Backend) Format() gputypes.TextureFormat { return b.format }

// Init allocates the canvas texture, clears it to bg, and builds the line
// and composite pipelines. A failing step releases everything created
// before it and returns a *turtle.ConstructionError.
func (b *Backend) Init(width, height int, bg turtle.RGBA) error {
	if b.initialized || b.closed {
		return turtle.ErrBackendInUse
	}
	if b.device == nil || b.queue == nil {
		return turtle.NewConstructionError("gpu backend", ErrNilDevice)
	}

	surf, err := newSurface(b.device, uint32(width), uint32(height)) //nolint:gosec // validated positive by turtle.New
	if err != nil {
		return turtle.NewConstructionError("canvas surface", err)
	}
	b.surf = surf

	// The initial clear doubles as the check that the texture can be
	// used as a render attachment.
	if err := b.sub.run("turtle_initial_clear", func(encoder hal.CommandEncoder) error {
		surf.recordClear(encoder, bg)
		return nil
	}); err != nil {
		b.release()
		return turtle.NewConstructionError("initial clear", err)
	}

	lines, err := newLineRenderer(b.device, b.queue, b.log)
	if err != nil {
		b.release()
		return turtle.NewConstructionError("line renderer", err)
	}
	b.lines = lines

	comp, err := newCompositor(b.device, b.queue, surf, b.format, b.log)
	if err != nil {
		b.release()
		return turtle.NewConstructionError("compositor", err)
	}
	b.comp = comp

	b.initialized = true
	b.log.logger().Debug("gpu: backend initialized",
		"width", width, "height", height, "format", b.format)
	return nil
}

func (b *Backend) ready() bool { return b.initialized && !b.closed }

// Flush rasterizes verts into the canvas texture. Pairs of vertices form
// independent segments. Pens at or below 1 pixel draw hairlines; thicker
// pens draw quads. A non-positive thickness draws nothing.
func (b *Backend) Flush(verts []turtle.Vertex, thickness float32) error {
	if !b.ready() {
		return errNotReady
	}
	segments := len(verts) / 2
	if segments == 0 {
		return nil
	}
	if !(thickness > 0) {
		b.log.logger().Debug("gpu: skipping flush with non-positive thickness",
			"segments", segments, "thickness", thickness)
		return nil
	}
	verts = verts[:segments*2]

	if b.lines.needsGrow(len(verts)) {
		// The old vertex buffer may still be read by in-flight work.
		if err := b.sub.wait(); err != nil {
			return err
		}
		if err := b.lines.grow(len(verts)); err != nil {
			return err
		}
	}
	if err := b.lines.upload(verts, b.surf.width, b.surf.height, thickness); err != nil {
		return err
	}

	return b.sub.run("turtle_flush", func(encoder hal.CommandEncoder) error {
		b.surf.transition(encoder, gputypes.TextureUsageRenderAttachment)
		rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
			Label:            "turtle_flush_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{b.surf.attachment(gputypes.LoadOpLoad, turtle.RGBA{})},
		})
		b.lines.recordDraw(rp, uint32(segments), thickness) //nolint:gosec // segments is non-negative
		rp.End()
		return nil
	})
}

// Clear resets the canvas texture to bg.
func (b *Backend) Clear(bg turtle.RGBA) error {
	if !b.ready() {
		return errNotReady
	}
	return b.sub.run("turtle_clear", func(encoder hal.CommandEncoder) error {
		b.surf.recordClear(encoder, bg)
		return nil
	})
}

// Composite blends the canvas over target. GPU targets are drawn with the
// full-screen quad. CPU RGBA targets receive a readback of the canvas
// composited on the CPU.
func (b *Backend) Composite(target render.RenderTarget) error {
	if !b.ready() {
		return errNotReady
	}
	if view := target.TextureView(); view != nil {
		format := target.Format()
		if format == gputypes.TextureFormatUndefined {
			format = b.format
		}
		pipeline, err := b.comp.pipelineFor(format)
		if err != nil {
			return err
		}
		return b.sub.run("turtle_composite", func(encoder hal.CommandEncoder) error {
			b.surf.transition(encoder, gputypes.TextureUsageTextureBinding)
			b.comp.recordDraw(encoder, pipeline, view)
			return nil
		})
	}

	dst, ok := render.PixelImage(target)
	if !ok {
		return fmt.Errorf("%w: %T with format %v", turtle.ErrUnsupportedTarget, target, target.Format())
	}
	src, err := b.readSurface()
	if err != nil {
		return err
	}
	raster.Composite(dst, src)
	return nil
}

// Snapshot reads the canvas texture back from the GPU.
func (b *Backend) Snapshot() (*image.NRGBA, error) {
	if !b.ready() {
		return nil, errNotReady
	}
	return b.readSurface()
}

// Close waits for the GPU to finish and releases every resource in
// reverse creation order. Calling it again is a no-op.
func (b *Backend) Close() {
	if b.closed {
		b.log.logger().Warn("gpu: close on closed backend")
		return
	}
	b.closed = true
	if b.device == nil {
		return
	}
	b.release()
	b.log.logger().Debug("gpu: backend closed")
}

// release waits for submitted work and destroys whatever has been created,
// newest first.
func (b *Backend) release() {
	if err := b.sub.wait(); err != nil {
		b.log.logger().Warn("gpu: wait before release failed", "err", err)
	}
	if b.comp != nil {
		b.comp.destroy()
		b.comp = nil
	}
	if b.lines != nil {
		b.lines.destroy()
		b.lines = nil
	}
	if b.surf != nil {
		b.surf.destroy()
		b.surf = nil
	}
}

var _ turtle.Backend = (*Backend)(nil)
