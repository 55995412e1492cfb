// Package raster rasterizes pen segments into a CPU-side canvas surface.
//
// The canvas is an *image.NRGBA holding straight-alpha pixels, the same
// representation the GPU backend keeps in its RGBA8Unorm texture. Segments
// are drawn with source-over blending and persist until Clear.
package raster

import (
	"image"
	"image/color"

	"github.com/gogpu/turtle/internal/blend"
)

// Segment is a colored line between two pixel-space points.
type Segment struct {
	X0, Y0 float32
	X1, Y1 float32
	Color  color.NRGBA
}

// Canvas is a fixed-size persistent color buffer.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas allocates a width×height canvas filled with bg.
func NewCanvas(width, height int, bg color.NRGBA) *Canvas {
	c := &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
	c.Clear(bg)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the backing image. It shares memory with the canvas.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// Clear fills every pixel with bg.
func (c *Canvas) Clear(bg color.NRGBA) {
	pix := c.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = bg.R, bg.G, bg.B, bg.A
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// Snapshot returns a copy of the canvas pixels.
func (c *Canvas) Snapshot() *image.NRGBA {
	out := image.NewNRGBA(c.img.Rect)
	copy(out.Pix, c.img.Pix)
	return out
}

// StrokeSegments draws every segment with the given thickness.
// Thickness at or below 1 draws one-pixel hairlines; non-positive
// thickness draws nothing.
func (c *Canvas) StrokeSegments(segs []Segment, thickness float32) {
	if !(thickness > 0) {
		return
	}
	for i := range segs {
		if !segs[i].finite() {
			continue
		}
		if thickness <= 1 {
			c.hairline(&segs[i])
		} else {
			c.wide(&segs[i], thickness)
		}
	}
}

// blendPixel composites col over the pixel at (x, y). Out-of-bounds
// coordinates are ignored.
func (c *Canvas) blendPixel(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 || x >= c.img.Rect.Dx() || y >= c.img.Rect.Dy() {
		return
	}
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = blend.Alpha(col.R, col.G, col.B, col.A, p[0], p[1], p[2], p[3])
}

func (s *Segment) finite() bool {
	return isFinite(s.X0) && isFinite(s.Y0) && isFinite(s.X1) && isFinite(s.Y1)
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float32) bool {
	return v-v == 0
}
