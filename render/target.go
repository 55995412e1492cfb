// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderTarget defines where a composited canvas goes.
//
// A RenderTarget is an abstraction over different display destinations:
//   - PixmapTarget: CPU-backed *image.RGBA
//   - TextureTarget: offscreen GPU texture owned by the caller
//   - SurfaceTarget: the current frame of a window surface from the host
//
// Targets may support CPU access (Pixels), GPU access (TextureView), or both.
// The backend chooses the appropriate access method.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the GPU texture view for this target.
	// Returns nil for CPU-only targets.
	TextureView() hal.TextureView

	// Pixels returns direct access to pixel data.
	// Returns nil for GPU-only targets.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixelImage wraps the CPU pixels of t as an *image.RGBA sharing t's
// memory. It reports false when t has no CPU pixels or its format is not
// RGBA8Unorm.
func PixelImage(t RenderTarget) (*image.RGBA, bool) {
	pix := t.Pixels()
	if pix == nil || t.Format() != gputypes.TextureFormatRGBA8Unorm {
		return nil, false
	}
	if pm, ok := t.(*PixmapTarget); ok {
		return pm.img, true
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}, true
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	target.Clear(color.Black)
//	_ = canvas.Render(target)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() hal.TextureView {
	return nil
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color. Hosts call this at
// the start of a frame, before compositing the canvas.
func (t *PixmapTarget) Clear(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	bounds := t.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			t.img.SetRGBA(x, y, rgba)
		}
	}
}

var _ RenderTarget = (*PixmapTarget)(nil)

// TextureTarget is an offscreen GPU texture usable as a composite
// destination. It owns its texture and view.
type TextureTarget struct {
	device  hal.Device
	width   int
	height  int
	format  gputypes.TextureFormat
	texture hal.Texture
	view    hal.TextureView
}

// NewTextureTarget allocates a width×height texture of the given format
// with RenderAttachment, TextureBinding and CopySrc usage.
func NewTextureTarget(device hal.Device, width, height int, format gputypes.TextureFormat) (*TextureTarget, error) {
	if device == nil {
		return nil, fmt.Errorf("render: nil device")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid texture size %dx%d", width, height)
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "render_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}, //nolint:gosec // validated positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create target texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "render_target_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("render: create target view: %w", err)
	}
	return &TextureTarget{
		device:  device,
		width:   width,
		height:  height,
		format:  format,
		texture: tex,
		view:    view,
	}, nil
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int {
	return t.width
}

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int {
	return t.height
}

// Format returns the pixel format.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return t.format
}

// TextureView returns the GPU texture view.
func (t *TextureTarget) TextureView() hal.TextureView {
	return t.view
}

// Texture returns the backing texture, e.g. for copies.
func (t *TextureTarget) Texture() hal.Texture {
	return t.texture
}

// Pixels returns nil as this is a GPU-only target.
func (t *TextureTarget) Pixels() []byte {
	return nil
}

// Stride returns 0 as this is a GPU-only target.
func (t *TextureTarget) Stride() int {
	return 0
}

// Destroy releases the view and texture. Safe to call multiple times.
func (t *TextureTarget) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

var _ RenderTarget = (*TextureTarget)(nil)

// SurfaceTarget wraps the texture view of the frame the host is about to
// present. It does not own the view; the host acquires and releases it
// around each frame.
type SurfaceTarget struct {
	width  int
	height int
	format gputypes.TextureFormat
	view   hal.TextureView
}

// NewSurfaceTarget creates a render target from a window surface view.
func NewSurfaceTarget(width, height int, format gputypes.TextureFormat, view hal.TextureView) *SurfaceTarget {
	return &SurfaceTarget{
		width:  width,
		height: height,
		format: format,
		view:   view,
	}
}

// Width returns the surface width in pixels.
func (t *SurfaceTarget) Width() int {
	return t.width
}

// Height returns the surface height in pixels.
func (t *SurfaceTarget) Height() int {
	return t.height
}

// Format returns the surface pixel format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat {
	return t.format
}

// TextureView returns the current frame's texture view.
func (t *SurfaceTarget) TextureView() hal.TextureView {
	return t.view
}

// Pixels returns nil as surfaces do not support CPU access.
func (t *SurfaceTarget) Pixels() []byte {
	return nil
}

// Stride returns 0 as surfaces do not support CPU access.
func (t *SurfaceTarget) Stride() int {
	return 0
}

var _ RenderTarget = (*SurfaceTarget)(nil)
