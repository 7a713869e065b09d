// Package camera projects view-space points onto the screen.
package camera

import (
	"github.com/Faultbox/cuberoll/pkg/math"
)

// Camera is an orthographic projection onto a width x height viewport.
//
// Position, Direction and Up describe the viewer but do not affect
// Project: the projection drops the Z axis, scales by Zoom and recenters
// on the viewport.
type Camera struct {
	Position  math.Vec3
	Direction math.Vec3
	Up        math.Vec3

	Width  int
	Height int
	Zoom   float32
}

// New creates a camera at the origin looking down -Z with +Y up.
func New(width, height int, zoom float32) Camera {
	return Camera{
		Direction: math.Vec3{Z: -1},
		Up:        math.YAxis,
		Width:     width,
		Height:    height,
		Zoom:      zoom,
	}
}

// Project maps p to screen coordinates with Y growing downward.
func (c Camera) Project(p math.Vec3) math.Vec2 {
	return math.Vec2{
		X: c.Zoom*p.X + float32(c.Width)/2,
		Y: -c.Zoom*p.Y + float32(c.Height)/2,
	}
}

// ProjectAll projects every point through view and then the camera.
func (c Camera) ProjectAll(points []math.Vec3, view math.Mat4) []math.Vec2 {
	out := make([]math.Vec2, len(points))
	for i, p := range points {
		out[i] = c.Project(p.Transform(view))
	}
	return out
}

// Resize returns a copy of c with a new viewport size.
func (c Camera) Resize(width, height int) Camera {
	c.Width = width
	c.Height = height
	return c
}
