package turtle

// Vertex is one end of a line segment: a pixel-space position and an RGB
// color. Channels are passed to the rasterizer untouched.
type Vertex struct {
	X, Y    float32
	R, G, B float32
}

// Segment is a pair of vertices drawn as one disjoint line.
type Segment struct {
	From, To Vertex
}

// Batch accumulates line-segment vertices between flushes.
// Its length is always even: vertices are appended in pairs.
//
// The zero value is an empty batch ready to use.
type Batch struct {
	verts []Vertex
}

// Append adds one segment (two vertices) to the batch.
func (b *Batch) Append(from, to Vertex) {
	b.verts = append(b.verts, from, to)
}

// Len returns the number of vertices in the batch.
func (b *Batch) Len() int {
	return len(b.verts)
}

// Segments returns the number of line segments in the batch.
func (b *Batch) Segments() int {
	return len(b.verts) / 2
}

// Vertices returns the pending vertices. The slice aliases the batch
// storage and is only valid until the next Append or Reset.
func (b *Batch) Vertices() []Vertex {
	return b.verts
}

// Segment returns segment i. It panics if i is out of range.
func (b *Batch) Segment(i int) Segment {
	return Segment{From: b.verts[2*i], To: b.verts[2*i+1]}
}

// Reset drains the batch, keeping its capacity for the next frame.
func (b *Batch) Reset() {
	b.verts = b.verts[:0]
}
