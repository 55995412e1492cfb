// Package turtle provides a turtle-graphics pen over a GPU rasterizer.
//
// # Overview
//
// A Canvas accepts pen commands in screen-pixel coordinates, collects the
// resulting line segments, and rasterizes them into a persistent off-screen
// surface. Each Render call flushes pending segments into that surface and
// composites the surface onto a display target with a full-screen quad.
// The surface is only reset by Clear, so strokes accumulate across frames.
//
// # Quick Start
//
//	import "github.com/gogpu/turtle"
//
//	c, err := turtle.New(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Destroy()
//
//	c.SetColor(1, 0, 0)
//	c.SetSize(2)
//	c.PenDown()
//	c.MoveTo(100, 100)
//	c.LineTo(700, 500)
//
//	target := render.NewPixmapTarget(800, 600)
//	_ = c.Render(target)
//
// # Backends
//
// The default backend rasterizes on the CPU. For hardware rendering, build
// a backend from the host's GPU device and pass it with WithBackend:
//
//	be, err := gpu.NewBackend(provider)
//	c, err := turtle.New(800, 600, turtle.WithBackend(be))
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// PixelToNDC gives the exact mapping used by the GPU line shader.
//
// # Thread Safety
//
// A Canvas is not safe for concurrent use. Issue all commands for one
// canvas from a single goroutine, typically the host's render loop.
package turtle
