package renderer

import (
	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/pkg/math"
)

// floatsPerVertex is pos(3) + color(4).
const floatsPerVertex = 7

// Batch accumulates screen-space polygons as a single triangle list.
// Fills and outlines share one stream so submission order is draw order.
type Batch struct {
	vertices []float32

	// LineWidth is the outline thickness in pixels. Zero disables outlines.
	LineWidth float32
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{
		vertices:  make([]float32, 0, 4096),
		LineWidth: 1,
	}
}

// Reset empties the batch, keeping its storage.
func (b *Batch) Reset() {
	b.vertices = b.vertices[:0]
}

// Vertices returns the interleaved vertex data.
func (b *Batch) Vertices() []float32 {
	return b.vertices
}

// Len returns the number of vertices queued.
func (b *Batch) Len() int {
	return len(b.vertices) / floatsPerVertex
}

// DrawPolygon queues a triangle fan for the fill followed by one quad per
// outline edge. Fewer than three points queues nothing.
func (b *Batch) DrawPolygon(points []math.Vec2, outline, fill palette.Color) {
	if len(points) < 3 {
		return
	}

	for i := 1; i < len(points)-1; i++ {
		b.triangle(points[0], points[i], points[i+1], fill)
	}

	if b.LineWidth <= 0 {
		return
	}
	for i := range points {
		b.edge(points[i], points[(i+1)%len(points)], outline)
	}
}

func (b *Batch) edge(p, q math.Vec2, c palette.Color) {
	d := q.Sub(p)
	length := d.Length()
	if length == 0 {
		return
	}
	half := b.LineWidth / 2
	n := math.Vec2{X: -d.Y / length * half, Y: d.X / length * half}
	ext := math.Vec2{X: d.X / length * half, Y: d.Y / length * half}

	a := p.Sub(ext).Add(n)
	bb := q.Add(ext).Add(n)
	cc := q.Add(ext).Sub(n)
	dd := p.Sub(ext).Sub(n)
	b.triangle(a, bb, cc, c)
	b.triangle(a, cc, dd, c)
}

func (b *Batch) triangle(p0, p1, p2 math.Vec2, c palette.Color) {
	r, g, bl, a := c.Floats()
	for _, p := range [3]math.Vec2{p0, p1, p2} {
		b.vertices = append(b.vertices, p.X, p.Y, 0, r, g, bl, a)
	}
}

// Ortho returns a projection mapping pixel coordinates (origin top left,
// Y down) onto clip space.
func Ortho(width, height int) math.Mat4 {
	left, right := float32(0), float32(width)
	bottom, top := float32(height), float32(0)
	near, far := float32(-1), float32(1)

	return math.Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
