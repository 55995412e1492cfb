package raster

import (
	"github.com/chewxy/math32"
)

// wide fills the thickness-wide rectangle centered on the segment. Pixels
// are lit when their center falls inside the rectangle. The rectangle has
// no end caps, so zero-length segments draw nothing.
func (c *Canvas) wide(s *Segment, thickness float32) {
	dx := s.X1 - s.X0
	dy := s.Y1 - s.Y0
	length := math32.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	hw := thickness / 2
	nx, ny := -uy*hw, ux*hw

	quad := [4][2]float32{
		{s.X0 + nx, s.Y0 + ny},
		{s.X1 + nx, s.Y1 + ny},
		{s.X1 - nx, s.Y1 - ny},
		{s.X0 - nx, s.Y0 - ny},
	}

	minX, minY := quad[0][0], quad[0][1]
	maxX, maxY := minX, minY
	for _, p := range quad[1:] {
		minX = math32.Min(minX, p[0])
		minY = math32.Min(minY, p[1])
		maxX = math32.Max(maxX, p[0])
		maxY = math32.Max(maxY, p[1])
	}
	x0, x1 := centerSpan(minX, maxX, c.Width())
	y0, y1 := centerSpan(minY, maxY, c.Height())

	for y := y0; y <= y1; y++ {
		cy := float32(y) + 0.5
		for x := x0; x <= x1; x++ {
			cx := float32(x) + 0.5
			if insideQuad(&quad, cx, cy) {
				c.blendPixel(x, y, s.Color)
			}
		}
	}
}

// insideQuad reports whether (px, py) lies inside the convex quad. Points
// on an edge count as inside. Winding may be either direction.
func insideQuad(q *[4][2]float32, px, py float32) bool {
	var pos, neg bool
	for i := 0; i < 4; i++ {
		a := q[i]
		b := q[(i+1)%4]
		cross := (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}
