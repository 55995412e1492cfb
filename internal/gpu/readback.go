//go:build !nogpu

package gpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyRowAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyRowAlignment = 256

// alignedBytesPerRow returns the padded row pitch for a width-pixel RGBA8 row.
func alignedBytesPerRow(width uint32) uint32 {
	row := width * 4
	return (row + copyRowAlignment - 1) / copyRowAlignment * copyRowAlignment
}

// unpadRows copies rows rows of rowBytes each from src, whose rows are
// pitch bytes apart, into the tightly packed dst.
func unpadRows(dst, src []byte, rowBytes, pitch, rows int) {
	for y := 0; y < rows; y++ {
		copy(dst[y*rowBytes:(y+1)*rowBytes], src[y*pitch:y*pitch+rowBytes])
	}
}

// readSurface copies the canvas texture to a staging buffer, waits for the
// GPU and returns the pixels as straight-alpha RGBA.
func (b *Backend) readSurface() (*image.NRGBA, error) {
	s := b.surf
	pitch := alignedBytesPerRow(s.width)
	size := uint64(pitch) * uint64(s.height)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "turtle_readback_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	err = b.sub.run("turtle_readback", func(encoder hal.CommandEncoder) error {
		// The texture was last written as a render attachment; copies need
		// CopySrc. This is a no-op on Metal, GLES, software, and noop backends.
		s.transition(encoder, gputypes.TextureUsageCopySrc)
		encoder.CopyTextureToBuffer(s.texture, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: pitch, RowsPerImage: s.height},
			TextureBase:  hal.ImageCopyTexture{Texture: s.texture, MipLevel: 0},
			Size:         hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
		}})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := b.sub.wait(); err != nil {
		return nil, err
	}

	mapping, err := b.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size)

	img := image.NewNRGBA(image.Rect(0, 0, int(s.width), int(s.height)))
	unpadRows(img.Pix, data, int(s.width)*4, int(pitch), int(s.height))

	if err := b.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return img, nil
}
