// Package blend implements the source-over compositing used by the CPU
// rasterizer.
//
// Values are straight (not premultiplied) 8-bit channels, matching an
// RGBA8Unorm render attachment with alpha blending enabled. The equations
// are those of a GPU blend state of
//
//	color: src*Sa + dst*(1-Sa)
//	alpha: Sa + Da*(1-Sa)
//
// so that CPU and GPU canvases accumulate strokes identically.
package blend

// Alpha composites a straight-alpha source over a straight-alpha
// destination using SRC_ALPHA / ONE_MINUS_SRC_ALPHA for color and
// ONE / ONE_MINUS_SRC_ALPHA for alpha.
func Alpha(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	if sa == 255 {
		return sr, sg, sb, 255
	}
	invSa := 255 - sa
	return addDiv255(mulDiv255(sr, sa), mulDiv255(dr, invSa)),
		addDiv255(mulDiv255(sg, sa), mulDiv255(dg, invSa)),
		addDiv255(mulDiv255(sb, sa), mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// mulDiv255 multiplies two byte values and divides by 255 with proper rounding.
// Formula: (a * b + 127) / 255
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two byte values with clamping to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
