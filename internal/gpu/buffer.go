//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/turtle"
	"github.com/gogpu/wgpu/hal"
)

// lineVertexStride is the byte stride per vertex in the line pipelines.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
//
// Total = 20 bytes per vertex.
const lineVertexStride = 20

// segmentStride is one instance of the wide pipeline: both endpoints.
const segmentStride = 2 * lineVertexStride

// lineUniformSize is viewport (vec2<f32>) + thickness (f32) + padding (f32).
const lineUniformSize = 16

// quadVertexStride is position (vec2<f32>) + uv (vec2<f32>).
const quadVertexStride = 16

// wideCorners is the number of vertices a wide segment expands to.
const wideCorners = 6

// minVertexBufferSize keeps small batches from reallocating every flush.
const minVertexBufferSize = 4096

// quadVertices covers the whole target. UV (0,0) is the top-left texel.
var quadVertices = [4][4]float32{
	{-1, -1, 0, 1},
	{1, -1, 1, 1},
	{1, 1, 1, 0},
	{-1, 1, 0, 0},
}

// quadIndices draws the quad as two triangles.
var quadIndices = [6]uint16{0, 1, 2, 2, 3, 0}

// writeLineVertex encodes v into buf[:lineVertexStride].
func writeLineVertex(buf []byte, v turtle.Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.R))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.G))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.B))
}

// encodeLineVertices writes verts into staging, growing it if necessary,
// and returns the encoded bytes. The result reuses staging's memory.
func encodeLineVertices(verts []turtle.Vertex, staging []byte) []byte {
	needed := len(verts) * lineVertexStride
	if cap(staging) < needed {
		staging = make([]byte, needed)
	} else {
		staging = staging[:needed]
	}
	for i, v := range verts {
		writeLineVertex(staging[i*lineVertexStride:], v)
	}
	return staging
}

// makeLineUniform creates the 16-byte line uniform.
func makeLineUniform(w, h uint32, thickness float32) []byte {
	buf := make([]byte, lineUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(thickness))
	// Padding bytes 12..15 remain zero.
	return buf
}

func quadVertexData() []byte {
	buf := make([]byte, len(quadVertices)*quadVertexStride)
	for i, v := range quadVertices {
		for j, f := range v {
			binary.LittleEndian.PutUint32(buf[i*quadVertexStride+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

func quadIndexData() []byte {
	buf := make([]byte, len(quadIndices)*2)
	for i, idx := range quadIndices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// vertexBufferSize returns the allocation size for needed bytes: the next
// power of two, at least minVertexBufferSize.
func vertexBufferSize(needed uint64) uint64 {
	size := uint64(minVertexBufferSize)
	for size < needed {
		size *= 2
	}
	return size
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}
