// Package raster draws scene polygons into an in-memory RGBA image.
package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/pkg/math"
)

// Canvas is an offscreen drawing surface with anti-aliased edges.
type Canvas struct {
	img  *image.RGBA
	rast *vector.Rasterizer

	// LineWidth is the outline thickness in pixels. Zero disables outlines.
	LineWidth float32
}

// New creates a canvas of the given size.
func New(width, height int) *Canvas {
	return &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		rast:      vector.NewRasterizer(width, height),
		LineWidth: 1,
	}
}

// Image returns the backing image. It is reused across frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col palette.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawPolygon fills the closed polygon and strokes its edges.
// Fewer than three points draws nothing.
func (c *Canvas) DrawPolygon(points []math.Vec2, outline, fill palette.Color) {
	if len(points) < 3 {
		return
	}

	c.begin()
	c.rast.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.rast.LineTo(p.X, p.Y)
	}
	c.rast.ClosePath()
	c.paint(fill)

	if c.LineWidth <= 0 {
		return
	}
	c.begin()
	for i := range points {
		c.edge(points[i], points[(i+1)%len(points)])
	}
	c.paint(outline)
}

func (c *Canvas) begin() {
	w, h := c.Size()
	c.rast.Reset(w, h)
	c.rast.DrawOp = draw.Over
}

func (c *Canvas) paint(col palette.Color) {
	c.rast.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// edge adds a quad of LineWidth around segment a-b. Quads of adjacent edges
// overlap at corners where coverage saturates.
func (c *Canvas) edge(a, b math.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return
	}
	half := c.LineWidth / 2
	n := math.Vec2{X: -d.Y / length * half, Y: d.X / length * half}
	ext := math.Vec2{X: d.X / length * half, Y: d.Y / length * half}

	p0 := a.Sub(ext).Add(n)
	p1 := b.Add(ext).Add(n)
	p2 := b.Add(ext).Sub(n)
	p3 := a.Sub(ext).Sub(n)

	c.rast.MoveTo(p0.X, p0.Y)
	c.rast.LineTo(p1.X, p1.Y)
	c.rast.LineTo(p2.X, p2.Y)
	c.rast.LineTo(p3.X, p3.Y)
	c.rast.ClosePath()
}
