package raster

import (
	"github.com/chewxy/math32"
)

// hairline draws a one-pixel line. Along the major axis every pixel whose
// center lies in [start, end) is lit; the minor coordinate is sampled at
// that center. A segment at y=10 therefore lights row 10, counted from the
// top of the canvas. Zero-length segments draw nothing.
func (c *Canvas) hairline(s *Segment) {
	dx := s.X1 - s.X0
	dy := s.Y1 - s.Y0
	if dx == 0 && dy == 0 {
		return
	}

	if math32.Abs(dx) >= math32.Abs(dy) {
		x0, y0, x1, y1 := s.X0, s.Y0, s.X1, s.Y1
		if x0 > x1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		slope := (y1 - y0) / (x1 - x0)
		first, last := centerSpan(x0, x1, c.Width())
		for i := first; i <= last; i++ {
			cx := float32(i) + 0.5
			y := y0 + slope*(cx-x0)
			c.blendPixel(i, int(math32.Floor(y)), s.Color)
		}
		return
	}

	x0, y0, x1, y1 := s.X0, s.Y0, s.X1, s.Y1
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	slope := (x1 - x0) / (y1 - y0)
	first, last := centerSpan(y0, y1, c.Height())
	for j := first; j <= last; j++ {
		cy := float32(j) + 0.5
		x := x0 + slope*(cy-y0)
		c.blendPixel(int(math32.Floor(x)), j, s.Color)
	}
}

// centerSpan returns the inclusive range of pixel indices i in [0, limit)
// whose centers i+0.5 satisfy lo <= i+0.5 < hi.
func centerSpan(lo, hi float32, limit int) (first, last int) {
	lo = math32.Max(lo, -1)
	hi = math32.Min(hi, float32(limit)+1)
	first = int(math32.Ceil(lo - 0.5))
	last = int(math32.Ceil(hi-0.5)) - 1
	if first < 0 {
		first = 0
	}
	if last > limit-1 {
		last = limit - 1
	}
	return first, last
}
