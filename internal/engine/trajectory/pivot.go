package trajectory

import (
	"fmt"

	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/pkg/math"
)

// PivotFunc picks the rotation pivot from the snapshot immediately before
// the sub-frame being computed. It must not retain or modify prev.
type PivotFunc func(prev []model.Face) (math.Vec3, error)

// FixedPivot always returns p.
func FixedPivot(p math.Vec3) PivotFunc {
	return func([]model.Face) (math.Vec3, error) {
		return p, nil
	}
}

// VertexPivot returns the current position of a face's vertex.
func VertexPivot(face, vertex int) PivotFunc {
	return func(prev []model.Face) (math.Vec3, error) {
		if face < 0 || face >= len(prev) {
			return math.Vec3{}, fmt.Errorf("face %d of %d: %w", face, len(prev), ErrPivotReference)
		}
		vertices := prev[face].Vertices
		if vertex < 0 || vertex >= len(vertices) {
			return math.Vec3{}, fmt.Errorf("face %d vertex %d of %d: %w", face, vertex, len(vertices), ErrPivotReference)
		}
		return vertices[vertex], nil
	}
}

// CenterPivot returns the current center of a face.
func CenterPivot(face int) PivotFunc {
	return func(prev []model.Face) (math.Vec3, error) {
		if face < 0 || face >= len(prev) {
			return math.Vec3{}, fmt.Errorf("face %d of %d: %w", face, len(prev), ErrPivotReference)
		}
		return prev[face].Center, nil
	}
}
