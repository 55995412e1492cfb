package turtle

// PixelToNDC maps a pixel position on a w×h surface to normalized device
// coordinates. Pixel (0,0) is the top-left corner and maps to (-1, 1);
// pixel (w,h) maps to (1, -1). The Y axis is flipped because device space
// grows upward.
//
// This is the CPU mirror of the line shader's to_ndc function.
func PixelToNDC(px, py, w, h float32) (x, y float32) {
	x = (px/w)*2 - 1
	y = 1 - (py/h)*2
	return x, y
}

// NDCToPixel is the inverse of PixelToNDC.
func NDCToPixel(x, y, w, h float32) (px, py float32) {
	px = (x + 1) / 2 * w
	py = (1 - y) / 2 * h
	return px, py
}
