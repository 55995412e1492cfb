package turtle

// DefaultPenSize is the initial line thickness in pixels.
const DefaultPenSize float32 = 1.0

// Pen is the turtle state of a canvas: color, thickness, up/down flag and
// the last known cursor position.
//
// The zero value is not ready to use; call NewPen.
type Pen struct {
	R, G, B float32
	Size    float32
	Down    bool

	// X and Y are the cursor; valid only when HasLast is true.
	X, Y    float32
	HasLast bool
}

// NewPen returns a raised black pen of DefaultPenSize with no position.
func NewPen() Pen {
	return Pen{Size: DefaultPenSize}
}

// MoveTo repositions the cursor without emitting geometry.
func (p *Pen) MoveTo(x, y float32) {
	p.X, p.Y = x, y
	p.HasLast = true
}

// LineTo moves the cursor to (x, y). When the pen is down and a previous
// position exists it appends the traversed segment to b and reports true.
// Otherwise it behaves exactly like MoveTo.
func (p *Pen) LineTo(b *Batch, x, y float32) bool {
	if !p.Down || !p.HasLast {
		p.MoveTo(x, y)
		return false
	}
	b.Append(
		Vertex{X: p.X, Y: p.Y, R: p.R, G: p.G, B: p.B},
		Vertex{X: x, Y: y, R: p.R, G: p.G, B: p.B},
	)
	p.X, p.Y = x, y
	return true
}
