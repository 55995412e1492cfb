package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Composite draws src over dst with source-over blending, covering all of
// dst. When the sizes differ src is stretched with bilinear filtering, the
// same result a full-screen textured quad with a linear sampler produces.
func Composite(dst draw.Image, src *image.NRGBA) {
	db := dst.Bounds()
	sb := src.Bounds()
	if db.Size() == sb.Size() {
		draw.Draw(dst, db, src, sb.Min, draw.Over)
		return
	}
	draw.BiLinear.Scale(dst, db, src, sb, draw.Over, nil)
}
