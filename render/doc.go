// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines where a turtle canvas is composited and how the
// host hands its GPU device to turtle.
//
// # Key Principle
//
// turtle RECEIVES a GPU device from the host application, it does NOT
// create its own. The host owns the window, the surface and the frame
// loop; turtle only records commands on the shared device.
//
// # RenderTarget Implementations
//
//   - PixmapTarget: CPU-backed *image.RGBA target
//   - TextureTarget: offscreen GPU texture
//   - SurfaceTarget: the current frame of a window surface
//
// # Usage
//
//	device, queue, err := render.HALDevice(provider)
//	...
//	target := render.NewSurfaceTarget(w, h, format, frameView)
//	err = canvas.Render(target)
package render
