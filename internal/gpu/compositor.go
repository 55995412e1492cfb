//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// compositor draws the canvas texture over a display target with a
// full-screen quad and source-over blending.
//
// Pipelines depend on the target format. The backend's surface format is
// built eagerly; other formats are built the first time they are seen.
type compositor struct {
	device hal.Device
	queue  hal.Queue
	log    *logSink

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipelines  map[gputypes.TextureFormat]hal.RenderPipeline
	order      []gputypes.TextureFormat

	quadBuf   hal.Buffer
	indexBuf  hal.Buffer
	bindGroup hal.BindGroup
}

// newCompositor creates the composite shader, the quad buffers, a bind
// group sampling surf, and the pipeline for format. On failure everything
// created so far is released.
func newCompositor(device hal.Device, queue hal.Queue, surf *surface, format gputypes.TextureFormat, log *logSink) (*compositor, error) {
	c := &compositor{
		device:    device,
		queue:     queue,
		log:       log,
		pipelines: make(map[gputypes.TextureFormat]hal.RenderPipeline),
	}
	if err := c.create(surf, format); err != nil {
		c.destroy()
		return nil, err
	}
	return c, nil
}

func (c *compositor) create(surf *surface, format gputypes.TextureFormat) error {
	shader, err := createShader(c.device, "composite", compositeShaderSource, c.log.logger())
	if err != nil {
		return err
	}
	c.shader = shader

	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "composite_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create composite bind layout: %w", err)
	}
	c.bindLayout = bindLayout

	pipeLayout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "composite_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create composite pipeline layout: %w", err)
	}
	c.pipeLayout = pipeLayout

	quadBuf, err := createAndUploadBuffer(c.device, c.queue, "composite_quad", quadVertexData(), gputypes.BufferUsageVertex)
	if err != nil {
		return err
	}
	c.quadBuf = quadBuf

	indexBuf, err := createAndUploadBuffer(c.device, c.queue, "composite_indices", quadIndexData(), gputypes.BufferUsageIndex)
	if err != nil {
		return err
	}
	c.indexBuf = indexBuf

	bindGroup, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "composite_bind_group",
		Layout: c.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: surf.view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: surf.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("create composite bind group: %w", err)
	}
	c.bindGroup = bindGroup

	_, err = c.pipelineFor(format)
	return err
}

// pipelineFor returns the pipeline rendering into format, creating it on
// first use.
func (c *compositor) pipelineFor(format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if p, ok := c.pipelines[format]; ok {
		return p, nil
	}
	if len(c.pipelines) > 0 {
		c.log.logger().Warn("gpu: creating composite pipeline for additional target format", "format", format)
	}

	blend := gputypes.BlendStateAlpha()
	pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "composite_pipeline",
		Layout: c.pipeLayout,
		Vertex: hal.VertexState{
			Module:     c.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     c.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create composite pipeline for %v: %w", format, err)
	}
	c.pipelines[format] = pipeline
	c.order = append(c.order, format)
	c.log.logger().Debug("gpu: composite pipeline created", "format", format)
	return pipeline, nil
}

// recordDraw records a pass that blends the canvas over view using
// pipeline. The target's existing content is loaded, not cleared.
func (c *compositor) recordDraw(encoder hal.CommandEncoder, pipeline hal.RenderPipeline, view hal.TextureView) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "turtle_composite_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			},
		},
	})
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, c.bindGroup, nil)
	rp.SetVertexBuffer(0, c.quadBuf, 0)
	rp.SetIndexBuffer(c.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(len(quadIndices)), 1, 0, 0, 0)
	rp.End()
}

// destroy releases all resources in reverse creation order.
func (c *compositor) destroy() {
	if c.device == nil {
		return
	}
	for i := len(c.order) - 1; i >= 0; i-- {
		c.device.DestroyRenderPipeline(c.pipelines[c.order[i]])
	}
	c.pipelines = make(map[gputypes.TextureFormat]hal.RenderPipeline)
	c.order = nil
	if c.bindGroup != nil {
		c.device.DestroyBindGroup(c.bindGroup)
		c.bindGroup = nil
	}
	if c.indexBuf != nil {
		c.device.DestroyBuffer(c.indexBuf)
		c.indexBuf = nil
	}
	if c.quadBuf != nil {
		c.device.DestroyBuffer(c.quadBuf)
		c.quadBuf = nil
	}
	if c.pipeLayout != nil {
		c.device.DestroyPipelineLayout(c.pipeLayout)
		c.pipeLayout = nil
	}
	if c.bindLayout != nil {
		c.device.DestroyBindGroupLayout(c.bindLayout)
		c.bindLayout = nil
	}
	if c.shader != nil {
		c.device.DestroyShaderModule(c.shader)
		c.shader = nil
	}
}

// quadVertexLayout returns the vertex buffer layout for the composite pipeline.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
			},
		},
	}
}
