package turtle

import (
	"image"

	"github.com/gogpu/turtle/render"
)

// Backend owns a Canvas Surface together with the line rasterizer and
// compositor that draw into and out of it.
//
// Implementations are provided by this package (the software backend, the
// default) and by the gpu package. A backend serves exactly one Canvas:
// New calls Init once, and Destroy calls Close once.
type Backend interface {
	// Name returns the backend name (e.g., "software", "wgpu").
	Name() string

	// Init allocates the surface and every render resource and clears the
	// surface to background. On error nothing stays allocated.
	Init(width, height int, background RGBA) error

	// Flush rasterizes disjoint segments (vertex pairs) into the surface
	// with the given thickness. The surface keeps its previous content.
	Flush(vertices []Vertex, thickness float32) error

	// Clear resets every surface pixel to background.
	Clear(background RGBA) error

	// Composite draws the surface over target with a full-screen quad.
	Composite(target render.RenderTarget) error

	// Snapshot returns a copy of the surface pixels in straight alpha.
	Snapshot() (*image.NRGBA, error)

	// Close releases all resources. Safe to call more than once.
	Close()
}
