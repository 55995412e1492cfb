//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

var errInjected = errors.New("injected failure")

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// recordingDevice wraps the noop device, recording render passes and
// failing creation of resources whose label is in fail.
type recordingDevice struct {
	hal.Device

	fail map[string]bool

	passes             []*recordingPass
	copies             []hal.BufferTextureCopy
	pipelinesCreated   []string
	pipelinesDestroyed int
	texturesCreated    int
	texturesDestroyed  int
	buffersCreated     int
	buffersDestroyed   int
	waitIdleCalls      int
}

func newRecordingDevice(t *testing.T) (*recordingDevice, hal.Queue) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	return &recordingDevice{Device: device, fail: map[string]bool{}}, queue
}

// labeledPipeline remembers the descriptor a pipeline was built from.
// Noop resources are zero-sized, so pointer identity cannot tell them apart.
type labeledPipeline struct {
	hal.RenderPipeline
	label    string
	topology gputypes.PrimitiveTopology
	format   gputypes.TextureFormat
}

func (d *recordingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.fail[desc.Label] {
		return nil, errInjected
	}
	return d.Device.CreateShaderModule(desc)
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.fail[desc.Label] {
		return nil, errInjected
	}
	d.texturesCreated++
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) DestroyTexture(tex hal.Texture) {
	d.texturesDestroyed++
	d.Device.DestroyTexture(tex)
}

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if d.fail[desc.Label] {
		return nil, errInjected
	}
	d.buffersCreated++
	return d.Device.CreateBuffer(desc)
}

func (d *recordingDevice) DestroyBuffer(buf hal.Buffer) {
	d.buffersDestroyed++
	d.Device.DestroyBuffer(buf)
}

func (d *recordingDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	if d.fail[desc.Label] {
		return nil, errInjected
	}
	p, err := d.Device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, err
	}
	d.pipelinesCreated = append(d.pipelinesCreated, desc.Label)
	return &labeledPipeline{
		RenderPipeline: p,
		label:          desc.Label,
		topology:       desc.Primitive.Topology,
		format:         desc.Fragment.Targets[0].Format,
	}, nil
}

func (d *recordingDevice) DestroyRenderPipeline(p hal.RenderPipeline) {
	d.pipelinesDestroyed++
	if lp, ok := p.(*labeledPipeline); ok {
		p = lp.RenderPipeline
	}
	d.Device.DestroyRenderPipeline(p)
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, dev: d}, nil
}

func (d *recordingDevice) WaitIdle() error {
	d.waitIdleCalls++
	return d.Device.WaitIdle()
}

// passesLabeled returns the recorded passes with the given label.
func (d *recordingDevice) passesLabeled(label string) []*recordingPass {
	var out []*recordingPass
	for _, p := range d.passes {
		if p.label == label {
			out = append(out, p)
		}
	}
	return out
}

type recordingEncoder struct {
	hal.CommandEncoder
	dev *recordingDevice
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	p := &recordingPass{
		RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc),
		label:             desc.Label,
	}
	if len(desc.ColorAttachments) > 0 {
		p.loadOp = desc.ColorAttachments[0].LoadOp
		p.clear = desc.ColorAttachments[0].ClearValue
	}
	e.dev.passes = append(e.dev.passes, p)
	return p
}

func (e *recordingEncoder) CopyTextureToBuffer(src hal.Texture, dst hal.Buffer, regions []hal.BufferTextureCopy) {
	e.dev.copies = append(e.dev.copies, regions...)
	e.CommandEncoder.CopyTextureToBuffer(src, dst, regions)
}

type drawCall struct {
	pipeline  *labeledPipeline
	vertices  uint32
	indices   uint32
	instances uint32
	indexed   bool
}

type recordingPass struct {
	hal.RenderPassEncoder
	label   string
	loadOp  gputypes.LoadOp
	clear   gputypes.Color
	current *labeledPipeline
	draws   []drawCall
	ended   bool
}

func (p *recordingPass) SetPipeline(pipeline hal.RenderPipeline) {
	p.current, _ = pipeline.(*labeledPipeline)
	p.RenderPassEncoder.SetPipeline(pipeline)
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{pipeline: p.current, vertices: vertexCount, instances: instanceCount})
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{pipeline: p.current, indices: indexCount, instances: instanceCount, indexed: true})
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *recordingPass) End() {
	p.ended = true
	p.RenderPassEncoder.End()
}
