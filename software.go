package turtle

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/turtle/internal/raster"
	"github.com/gogpu/turtle/render"
)

// SoftwareBackend rasterizes on the CPU into an *image.NRGBA surface. It
// follows the same blending and coordinate rules as the GPU backend and
// composites onto CPU-backed targets only.
type SoftwareBackend struct {
	canvas *raster.Canvas
	segs   []raster.Segment
	closed bool
}

// NewSoftwareBackend returns an uninitialized software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns "software".
func (b *SoftwareBackend) Name() string { return "software" }

// Init allocates the surface and fills it with background.
func (b *SoftwareBackend) Init(width, height int, background RGBA) error {
	if b.canvas != nil || b.closed {
		return ErrBackendInUse
	}
	b.canvas = raster.NewCanvas(width, height, background.NRGBA())
	return nil
}

// Flush draws the segments into the surface.
func (b *SoftwareBackend) Flush(vertices []Vertex, thickness float32) error {
	if b.canvas == nil {
		return ErrCanvasClosed
	}
	if len(vertices) < 2 {
		return nil
	}
	b.segs = b.segs[:0]
	for i := 0; i+1 < len(vertices); i += 2 {
		from, to := vertices[i], vertices[i+1]
		b.segs = append(b.segs, raster.Segment{
			X0: from.X, Y0: from.Y,
			X1: to.X, Y1: to.Y,
			// Both ends carry the pen color of the LineTo that produced them.
			Color: opaque(from),
		})
	}
	b.canvas.StrokeSegments(b.segs, thickness)
	return nil
}

// Clear fills the surface with background.
func (b *SoftwareBackend) Clear(background RGBA) error {
	if b.canvas == nil {
		return ErrCanvasClosed
	}
	b.canvas.Clear(background.NRGBA())
	return nil
}

// Composite draws the surface over a CPU-backed RGBA8 target.
func (b *SoftwareBackend) Composite(target render.RenderTarget) error {
	if b.canvas == nil {
		return ErrCanvasClosed
	}
	dst, ok := render.PixelImage(target)
	if !ok {
		return fmt.Errorf("%w: software backend needs RGBA8 pixels, got format %v",
			ErrUnsupportedTarget, target.Format())
	}
	raster.Composite(dst, b.canvas.Image())
	return nil
}

// Snapshot returns a copy of the surface.
func (b *SoftwareBackend) Snapshot() (*image.NRGBA, error) {
	if b.canvas == nil {
		return nil, ErrCanvasClosed
	}
	return b.canvas.Snapshot(), nil
}

// Close drops the surface. The backend cannot be initialized again.
func (b *SoftwareBackend) Close() {
	b.canvas = nil
	b.segs = nil
	b.closed = true
}

// opaque converts a vertex color to 8 bits with full alpha.
func opaque(v Vertex) color.NRGBA {
	return RGBA{R: float64(v.R), G: float64(v.G), B: float64(v.B), A: 1}.NRGBA()
}

var _ Backend = (*SoftwareBackend)(nil)
