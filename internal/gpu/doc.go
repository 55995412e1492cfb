//go:build !nogpu

// Package gpu provides the wgpu hal rendering backend for turtle canvases.
//
// It leverages gogpu/wgpu (Pure Go WebGPU, zero CGO), which supports
// Vulkan, Metal, DX12 and GLES depending on the platform.
//
// # Architecture Overview
//
// Each canvas owns a persistent RGBA8 texture. Two passes touch it:
//
//	pen commands -> Flush (line pipeline, LoadOp=Load) -> canvas texture
//	canvas texture -> Composite (full-screen quad, source-over) -> target
//
// Key components:
//
//   - Backend: implements turtle.Backend over a borrowed hal.Device/hal.Queue
//   - surface: canvas texture, view and sampler
//   - lineRenderer: hairline (LineList) and wide (instanced quad) pipelines
//   - compositor: per-target-format quad pipelines
//   - submitter: one command buffer per operation, freed on completion
//
// # Shaders
//
// WGSL sources under shaders/ are embedded with go:embed, validated with
// naga at construction, and handed to the hal backend as WGSL.
//
// Use the public package github.com/gogpu/turtle/gpu to construct a
// Backend.
package gpu
