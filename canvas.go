package turtle

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/turtle/render"
)

// Canvas is a turtle pen over a persistent drawing surface.
//
// Pen commands append line segments to a pending batch. Render flushes the
// batch into the surface and composites the surface onto a target. The
// surface keeps its content across frames until Clear.
//
// Canvas is NOT safe for concurrent use. After Destroy, pen commands are
// ignored and the remaining methods return ErrCanvasClosed.
type Canvas struct {
	backend    Backend
	pen        Pen
	batch      Batch
	width      int
	height     int
	background RGBA
	log        *slog.Logger // nil: follow the package logger
	closed     bool
}

// New creates a width×height canvas and allocates all of its render
// resources. It fails with an error wrapping ErrInvalidDimensions for
// non-positive sizes, and with an error matching ErrConstruction when a
// resource cannot be created; no partially built canvas is returned.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	be := o.backend
	if be == nil {
		be = NewSoftwareBackend()
	}

	c := &Canvas{
		backend:    be,
		pen:        NewPen(),
		width:      width,
		height:     height,
		background: o.background,
		log:        o.logger,
	}
	c.pen.R = float32(o.penColor.R)
	c.pen.G = float32(o.penColor.G)
	c.pen.B = float32(o.penColor.B)
	c.pen.Size = o.penSize

	propagateLogger(be, c.logger())
	if err := be.Init(width, height, o.background); err != nil {
		if !errors.Is(err, ErrConstruction) && !errors.Is(err, ErrBackendInUse) {
			err = NewConstructionError(be.Name()+" backend", err)
		}
		c.logger().Debug("turtle: canvas construction failed", "backend", be.Name(), "err", err)
		return nil, err
	}
	if c.log == nil {
		track(c)
	}

	c.logger().Debug("turtle: canvas created",
		"width", width, "height", height, "backend", be.Name())
	return c, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(width, height int, opts ...Option) *Canvas {
	c, err := New(width, height, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Canvas) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// PenDown lowers the pen so that LineTo draws.
func (c *Canvas) PenDown() {
	if c.closed {
		return
	}
	c.pen.Down = true
}

// PenUp raises the pen so that LineTo only moves.
func (c *Canvas) PenUp() {
	if c.closed {
		return
	}
	c.pen.Down = false
}

// SetColor sets the color of subsequently drawn segments. Values are not
// validated; segments already pending keep their color.
func (c *Canvas) SetColor(r, g, b float32) {
	if c.closed {
		return
	}
	c.pen.R, c.pen.G, c.pen.B = r, g, b
}

// SetSize sets the line thickness in pixels. Thickness is applied to the
// whole pending batch when it is flushed, so the last SetSize before a
// flush wins. Sizes at or below 1 draw hairlines; non-positive sizes draw
// nothing.
func (c *Canvas) SetSize(thickness float32) {
	if c.closed {
		return
	}
	c.pen.Size = thickness
}

// MoveTo moves the cursor to (x, y) without drawing, whatever the pen state.
func (c *Canvas) MoveTo(x, y float32) {
	if c.closed {
		return
	}
	c.pen.MoveTo(x, y)
}

// LineTo moves the cursor to (x, y). With the pen down and a known previous
// position it appends the segment between them; otherwise it acts like
// MoveTo. The first LineTo on a fresh canvas therefore never draws.
func (c *Canvas) LineTo(x, y float32) {
	if c.closed {
		return
	}
	c.pen.LineTo(&c.batch, x, y)
}

// Clear drops pending segments and resets the surface to the background.
// Pen color, size, up/down state and position are kept.
func (c *Canvas) Clear() error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.batch.Reset()
	if err := c.backend.Clear(c.background); err != nil {
		return fmt.Errorf("turtle: clear: %w", err)
	}
	return nil
}

// Flush rasterizes the pending batch into the surface and drains it.
// An empty batch is a no-op.
func (c *Canvas) Flush() error {
	if c.closed {
		return ErrCanvasClosed
	}
	if c.batch.Len() == 0 {
		return nil
	}
	defer c.batch.Reset()

	c.logger().Debug("turtle: flush",
		"segments", c.batch.Segments(), "thickness", c.pen.Size)
	if err := c.backend.Flush(c.batch.Vertices(), c.pen.Size); err != nil {
		return fmt.Errorf("turtle: flush: %w", err)
	}
	return nil
}

// Render flushes pending segments and composites the surface over target.
// Call it once per displayed frame after all pen commands for that frame.
// A nil target only flushes.
func (c *Canvas) Render(target render.RenderTarget) error {
	if err := c.Flush(); err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	if err := c.backend.Composite(target); err != nil {
		return fmt.Errorf("turtle: composite: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the surface pixels. Pending segments are not
// included until the next Flush or Render.
func (c *Canvas) Snapshot() (*image.NRGBA, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}
	img, err := c.backend.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("turtle: snapshot: %w", err)
	}
	return img, nil
}

// Destroy releases the surface and every render resource. Calling it again
// is a no-op.
func (c *Canvas) Destroy() {
	if c.closed {
		c.logger().Debug("turtle: destroy on closed canvas")
		return
	}
	c.closed = true
	untrack(c)
	c.batch.Reset()
	c.backend.Close()
	c.logger().Debug("turtle: canvas destroyed", "backend", c.backend.Name())
}

// Close is Destroy for use with defer and io.Closer-style cleanup.
func (c *Canvas) Close() error {
	c.Destroy()
	return nil
}

// Pen returns a copy of the current pen state.
func (c *Canvas) Pen() Pen {
	return c.pen
}

// Pending returns a copy of the vertices waiting for the next flush.
func (c *Canvas) Pending() []Vertex {
	return append([]Vertex(nil), c.batch.Vertices()...)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Background returns the color Clear resets the surface to.
func (c *Canvas) Background() RGBA {
	return c.background
}

// Backend returns the backend that owns the surface.
func (c *Canvas) Backend() Backend {
	return c.backend
}
