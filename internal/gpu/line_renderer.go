//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/turtle"
	"github.com/gogpu/wgpu/hal"
)

// hairlineMaxThickness is the largest pen size drawn with the LineList
// pipeline. Thicker pens expand each segment into a quad.
const hairlineMaxThickness = 1.0

// lineRenderer rasterizes segment batches into the canvas texture.
//
// Two pipelines share one shader, layout and vertex buffer:
//
//	hairline: LineList, one vertex per endpoint (thickness <= 1)
//	wide:     TriangleList, one instance per segment, 6 corners each
//
// The vertex buffer is reused between flushes and grown when a batch
// outgrows it.
type lineRenderer struct {
	device hal.Device
	queue  hal.Queue
	log    *logSink

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	hairline      hal.RenderPipeline
	wide          hal.RenderPipeline

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	vertBuf  hal.Buffer
	vertSize uint64
	staging  []byte
}

// newLineRenderer creates the line shader, pipelines, uniform buffer and
// an initial vertex buffer. On failure everything created so far is
// released.
func newLineRenderer(device hal.Device, queue hal.Queue, log *logSink) (*lineRenderer, error) {
	lr := &lineRenderer{device: device, queue: queue, log: log}
	if err := lr.createPipelines(); err != nil {
		lr.destroy()
		return nil, err
	}
	if err := lr.createBuffers(); err != nil {
		lr.destroy()
		return nil, err
	}
	return lr, nil
}

func (lr *lineRenderer) createPipelines() error {
	shader, err := createShader(lr.device, "line", lineShaderSource, lr.log.logger())
	if err != nil {
		return err
	}
	lr.shader = shader

	uniformLayout, err := lr.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "line_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create line uniform layout: %w", err)
	}
	lr.uniformLayout = uniformLayout

	pipeLayout, err := lr.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "line_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{lr.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create line pipeline layout: %w", err)
	}
	lr.pipeLayout = pipeLayout

	hairline, err := lr.createPipeline("line_hairline_pipeline", "vs_line",
		hairlineVertexLayout(), gputypes.PrimitiveTopologyLineList)
	if err != nil {
		return err
	}
	lr.hairline = hairline

	wide, err := lr.createPipeline("line_wide_pipeline", "vs_wide",
		wideVertexLayout(), gputypes.PrimitiveTopologyTriangleList)
	if err != nil {
		return err
	}
	lr.wide = wide

	lr.log.logger().Debug("gpu: line pipelines created")
	return nil
}

func (lr *lineRenderer) createPipeline(
	label, entryPoint string, buffers []gputypes.VertexBufferLayout, topology gputypes.PrimitiveTopology,
) (hal.RenderPipeline, error) {
	blend := gputypes.BlendStateAlpha()
	pipeline, err := lr.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: lr.pipeLayout,
		Vertex: hal.VertexState{
			Module:     lr.shader,
			EntryPoint: entryPoint,
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     lr.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    surfaceFormat,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return pipeline, nil
}

func (lr *lineRenderer) createBuffers() error {
	uniformBuf, err := lr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "line_uniform",
		Size:  lineUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create line uniform buffer: %w", err)
	}
	lr.uniformBuf = uniformBuf

	bindGroup, err := lr.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "line_bind_group",
		Layout: lr.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: lineUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create line bind group: %w", err)
	}
	lr.bindGroup = bindGroup

	return lr.allocVertexBuffer(minVertexBufferSize)
}

// needsGrow reports whether vertexCount vertices exceed the vertex buffer.
func (lr *lineRenderer) needsGrow(vertexCount int) bool {
	return uint64(vertexCount)*lineVertexStride > lr.vertSize //nolint:gosec // count is non-negative
}

// grow replaces the vertex buffer with one that holds vertexCount
// vertices. The caller must ensure the GPU no longer reads the old one.
func (lr *lineRenderer) grow(vertexCount int) error {
	size := vertexBufferSize(uint64(vertexCount) * lineVertexStride) //nolint:gosec // count is non-negative
	if lr.vertBuf != nil {
		lr.device.DestroyBuffer(lr.vertBuf)
		lr.vertBuf = nil
		lr.vertSize = 0
	}
	lr.log.logger().Debug("gpu: growing line vertex buffer", "bytes", size)
	return lr.allocVertexBuffer(size)
}

func (lr *lineRenderer) allocVertexBuffer(size uint64) error {
	buf, err := lr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "line_vertices",
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create line vertex buffer: %w", err)
	}
	lr.vertBuf = buf
	lr.vertSize = size
	return nil
}

// upload writes the batch and the uniform for a width×height canvas.
func (lr *lineRenderer) upload(verts []turtle.Vertex, width, height uint32, thickness float32) error {
	lr.staging = encodeLineVertices(verts, lr.staging)
	if err := lr.queue.WriteBuffer(lr.vertBuf, 0, lr.staging); err != nil {
		return fmt.Errorf("write line vertices: %w", err)
	}
	if err := lr.queue.WriteBuffer(lr.uniformBuf, 0, makeLineUniform(width, height, thickness)); err != nil {
		return fmt.Errorf("write line uniform: %w", err)
	}
	return nil
}

// recordDraw records the draw for segments uploaded segments into rp.
func (lr *lineRenderer) recordDraw(rp hal.RenderPassEncoder, segments uint32, thickness float32) {
	if segments == 0 {
		return
	}
	rp.SetBindGroup(0, lr.bindGroup, nil)
	rp.SetVertexBuffer(0, lr.vertBuf, 0)
	if thickness <= hairlineMaxThickness {
		rp.SetPipeline(lr.hairline)
		rp.Draw(segments*2, 1, 0, 0)
		return
	}
	rp.SetPipeline(lr.wide)
	rp.Draw(wideCorners, segments, 0, 0)
}

// destroy releases all resources in reverse creation order.
func (lr *lineRenderer) destroy() {
	if lr.device == nil {
		return
	}
	if lr.vertBuf != nil {
		lr.device.DestroyBuffer(lr.vertBuf)
		lr.vertBuf = nil
		lr.vertSize = 0
	}
	if lr.bindGroup != nil {
		lr.device.DestroyBindGroup(lr.bindGroup)
		lr.bindGroup = nil
	}
	if lr.uniformBuf != nil {
		lr.device.DestroyBuffer(lr.uniformBuf)
		lr.uniformBuf = nil
	}
	if lr.wide != nil {
		lr.device.DestroyRenderPipeline(lr.wide)
		lr.wide = nil
	}
	if lr.hairline != nil {
		lr.device.DestroyRenderPipeline(lr.hairline)
		lr.hairline = nil
	}
	if lr.pipeLayout != nil {
		lr.device.DestroyPipelineLayout(lr.pipeLayout)
		lr.pipeLayout = nil
	}
	if lr.uniformLayout != nil {
		lr.device.DestroyBindGroupLayout(lr.uniformLayout)
		lr.uniformLayout = nil
	}
	if lr.shader != nil {
		lr.device.DestroyShaderModule(lr.shader)
		lr.shader = nil
	}
}

// hairlineVertexLayout returns the per-vertex layout of the hairline pipeline.
func hairlineVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: lineVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// wideVertexLayout returns the per-instance layout of the wide pipeline.
// One instance reads both endpoints of a segment.
func wideVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: segmentStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // a position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1},  // a color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 20, ShaderLocation: 2}, // b position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 28, ShaderLocation: 3}, // b color
			},
		},
	}
}
