//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/turtle"
	"github.com/gogpu/wgpu/hal"
)

// surfaceFormat is the pixel format of the canvas texture. Colors are
// stored unpremultiplied, matching the software backend.
const surfaceFormat = gputypes.TextureFormatRGBA8Unorm

// surface is the persistent canvas texture that accumulates strokes
// across frames.
type surface struct {
	device  hal.Device
	width   uint32
	height  uint32
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	// usage is the last usage recorded for texture; transitions are
	// emitted only when it changes.
	usage gputypes.TextureUsage
}

// newSurface allocates the canvas texture, its view and a linear
// clamp-to-edge sampler. On failure everything created so far is released.
func newSurface(device hal.Device, width, height uint32) (*surface, error) {
	s := &surface{device: device, width: width, height: height}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "turtle_canvas",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        surfaceFormat,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create canvas texture: %w", err)
	}
	s.texture = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "turtle_canvas_view",
		Format:        surfaceFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		s.destroy()
		return nil, fmt.Errorf("create canvas view: %w", err)
	}
	s.view = view

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "turtle_canvas_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
		LodMaxClamp:  32,
	})
	if err != nil {
		s.destroy()
		return nil, fmt.Errorf("create canvas sampler: %w", err)
	}
	s.sampler = sampler

	return s, nil
}

// transition records a barrier moving the texture to usage. No barrier is
// needed before first use or when the texture is already there.
func (s *surface) transition(encoder hal.CommandEncoder, usage gputypes.TextureUsage) {
	if s.usage == usage {
		return
	}
	if s.usage != 0 {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: s.texture,
			Usage: hal.TextureUsageTransition{
				OldUsage: s.usage,
				NewUsage: usage,
			},
		}})
	}
	s.usage = usage
}

// attachment returns the color attachment that renders into the canvas.
func (s *surface) attachment(load gputypes.LoadOp, clear turtle.RGBA) hal.RenderPassColorAttachment {
	return hal.RenderPassColorAttachment{
		View:       s.view,
		LoadOp:     load,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: gputypes.Color{R: clear.R, G: clear.G, B: clear.B, A: clear.A},
	}
}

// recordClear records a pass that resets the canvas to bg.
func (s *surface) recordClear(encoder hal.CommandEncoder, bg turtle.RGBA) {
	s.transition(encoder, gputypes.TextureUsageRenderAttachment)
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "turtle_clear_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{s.attachment(gputypes.LoadOpClear, bg)},
	})
	rp.End()
}

// destroy releases the sampler, view and texture in reverse creation order.
func (s *surface) destroy() {
	if s.device == nil {
		return
	}
	if s.sampler != nil {
		s.device.DestroySampler(s.sampler)
		s.sampler = nil
	}
	if s.view != nil {
		s.device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.texture != nil {
		s.device.DestroyTexture(s.texture)
		s.texture = nil
	}
}
