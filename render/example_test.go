// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render_test

import (
	"fmt"
	"image/color"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/render"
)

// ExampleNewPixmapTarget composites a canvas onto a CPU-backed target.
func ExampleNewPixmapTarget() {
	target := render.NewPixmapTarget(16, 16)
	target.Clear(color.Black)

	canvas, err := turtle.New(16, 16)
	if err != nil {
		fmt.Println("failed to create canvas:", err)
		return
	}
	defer canvas.Destroy()

	canvas.SetColor(1, 0, 0)
	canvas.PenDown()
	canvas.MoveTo(0, 8.5)
	canvas.LineTo(16, 8.5)

	if err := canvas.Render(target); err != nil {
		fmt.Println("render failed:", err)
		return
	}

	fmt.Println(target.Image().RGBAAt(4, 8))
	fmt.Println(target.Image().RGBAAt(4, 2))
	// Output:
	// {255 0 0 255}
	// {0 0 0 255}
}

// ExampleHALDevice shows that a host without HAL access is rejected.
func ExampleHALDevice() {
	_, _, err := render.HALDevice(render.NullDeviceHandle{})
	fmt.Println(err == render.ErrNoHALAccess)
	// Output: true
}
