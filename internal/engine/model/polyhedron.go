package model

import (
	"fmt"

	"github.com/Faultbox/cuberoll/pkg/math"
)

// Polyhedron is a vertex list plus a face-index table.
// Each face lists vertex indices in counter-clockwise order seen from outside.
type Polyhedron struct {
	Vertices []math.Vec3
	Faces    [][]int
}

// Cube returns the cube with corners at every combination of ±1.
func Cube() Polyhedron {
	return Polyhedron{
		Vertices: []math.Vec3{
			{X: 1, Y: 1, Z: 1},
			{X: -1, Y: 1, Z: 1},
			{X: 1, Y: -1, Z: 1},
			{X: -1, Y: -1, Z: 1},
			{X: 1, Y: 1, Z: -1},
			{X: -1, Y: 1, Z: -1},
			{X: 1, Y: -1, Z: -1},
			{X: -1, Y: -1, Z: -1},
		},
		Faces: [][]int{
			{0, 1, 3, 2}, // front  (z = +1)
			{4, 6, 7, 5}, // back   (z = -1)
			{0, 4, 5, 1}, // top    (y = +1)
			{2, 3, 7, 6}, // bottom (y = -1)
			{0, 2, 6, 4}, // right  (x = +1)
			{1, 5, 7, 3}, // left   (x = -1)
		},
	}
}

// BuildFaces resolves the face-index table into faces.
func (p Polyhedron) BuildFaces() ([]Face, error) {
	faces := make([]Face, 0, len(p.Faces))
	for fi, indices := range p.Faces {
		vertices := make([]math.Vec3, len(indices))
		for i, idx := range indices {
			if idx < 0 || idx >= len(p.Vertices) {
				return nil, fmt.Errorf("face %d vertex %d: index %d: %w", fi, i, idx, ErrVertexIndex)
			}
			vertices[i] = p.Vertices[idx]
		}

		face, err := NewFace(vertices)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", fi, err)
		}
		faces = append(faces, face)
	}
	return faces, nil
}
