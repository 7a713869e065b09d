// Package model provides the rigid polyhedron and its planar faces.
package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cuberoll/pkg/math"
)

var (
	ErrTooFewVertices = errors.New("face needs at least 3 vertices")
	ErrVertexIndex    = errors.New("face references unknown vertex")
)

// Face is a planar polygon with a shared winding order.
// Center and Normal are derived from Vertices and never set on their own.
type Face struct {
	Vertices []math.Vec3
	Center   math.Vec3
	Normal   math.Vec3
}

// NewFace builds a face from vertices in winding order.
// The center is the midpoint of the v0-v2 diagonal and the normal is
// (v1-v0) x (v2-v1), normalized.
func NewFace(vertices []math.Vec3) (Face, error) {
	if len(vertices) < 3 {
		return Face{}, fmt.Errorf("%d vertices: %w", len(vertices), ErrTooFewVertices)
	}

	v := make([]math.Vec3, len(vertices))
	copy(v, vertices)

	half, err := v[2].Sub(v[0]).Divide(2)
	if err != nil {
		return Face{}, err
	}
	normal, err := v[1].Sub(v[0]).Cross(v[2].Sub(v[1])).Normalize()
	if err != nil {
		return Face{}, fmt.Errorf("face normal: %w", err)
	}

	return Face{
		Vertices: v,
		Center:   half.Add(v[0]),
		Normal:   normal,
	}, nil
}

// Moved returns a new face with fn applied to every vertex.
func (f Face) Moved(fn func(math.Vec3) (math.Vec3, error)) (Face, error) {
	moved := make([]math.Vec3, len(f.Vertices))
	for i, v := range f.Vertices {
		m, err := fn(v)
		if err != nil {
			return Face{}, err
		}
		moved[i] = m
	}
	return NewFace(moved)
}

// Bounds returns the axis-aligned bounds of all vertices in faces.
func Bounds(faces []Face) (minV, maxV math.Vec3) {
	first := true
	for _, f := range faces {
		for _, v := range f.Vertices {
			if first {
				minV, maxV = v, v
				first = false
				continue
			}
			minV = math.Vec3{X: min(minV.X, v.X), Y: min(minV.Y, v.Y), Z: min(minV.Z, v.Z)}
			maxV = math.Vec3{X: max(maxV.X, v.X), Y: max(maxV.Y, v.Y), Z: max(maxV.Z, v.Z)}
		}
	}
	return minV, maxV
}
