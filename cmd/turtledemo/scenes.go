package main

import (
	"math"

	"github.com/gogpu/turtle"
)

// drawing issues pen commands and calls present once per displayed frame.
type drawing func(c *turtle.Canvas, present func() error) error

var scenes = map[string]drawing{
	"square":   drawSquare,
	"diagonal": drawDiagonal,
	"spiral":   drawSpiral,
}

// drawSquare strokes the square outline: exactly four segments.
func drawSquare(c *turtle.Canvas, present func() error) error {
	w, h := float32(c.Width()), float32(c.Height())
	left, right := w*0.25, w*0.75
	top, bottom := h*0.25, h*0.75

	c.SetColor(1, 1, 1)
	c.PenDown()
	c.MoveTo(left, top)
	c.LineTo(right, top)
	c.LineTo(right, bottom)
	c.LineTo(left, bottom)
	c.LineTo(left, top)
	return present()
}

// drawDiagonal draws one red line from near the top-left to near the
// bottom-right corner.
func drawDiagonal(c *turtle.Canvas, present func() error) error {
	w, h := float32(c.Width()), float32(c.Height())
	c.SetColor(1, 0, 0)
	c.SetSize(2)
	c.PenDown()
	c.MoveTo(w/8, h/6)
	c.LineTo(w*7/8, h*5/6)
	return present()
}

// drawSpiral walks an outward spiral over several frames, thickening the
// pen every frame. Earlier frames stay on the canvas.
func drawSpiral(c *turtle.Canvas, present func() error) error {
	const (
		frames        = 12
		stepsPerFrame = 40
		turns         = 6.0
	)
	w, h := float64(c.Width()), float64(c.Height())
	cx, cy := w/2, h/2
	maxR := math.Min(w, h) * 0.45
	total := frames * stepsPerFrame

	c.MoveTo(float32(cx), float32(cy))
	c.PenDown()
	for f := 0; f < frames; f++ {
		c.SetSize(1 + float32(f)/2)
		hue := float64(f) / frames
		c.SetColor(float32(0.5+0.5*math.Cos(2*math.Pi*hue)),
			float32(0.5+0.5*math.Cos(2*math.Pi*(hue+1.0/3))),
			float32(0.5+0.5*math.Cos(2*math.Pi*(hue+2.0/3))))
		for s := 0; s < stepsPerFrame; s++ {
			t := float64(f*stepsPerFrame+s+1) / float64(total)
			angle := t * turns * 2 * math.Pi
			r := t * maxR
			c.LineTo(float32(cx+r*math.Cos(angle)), float32(cy+r*math.Sin(angle)))
		}
		if err := present(); err != nil {
			return err
		}
	}
	return nil
}
