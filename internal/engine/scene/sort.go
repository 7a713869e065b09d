package scene

import (
	"cmp"
	"slices"

	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/pkg/math"
)

type depthKey struct {
	face model.Face
	key  math.Vec3
}

// DepthSort returns faces ordered back to front relative to anchor.
// The key of a face is anchor minus its view-space center. Larger Z keys
// (farther) come first, ties fall back to X and then Y in the same
// direction. Faces with equal keys keep their input order.
func DepthSort(faces []model.Face, view math.Mat4, anchor math.Vec3) []model.Face {
	keyed := make([]depthKey, len(faces))
	for i, f := range faces {
		keyed[i] = depthKey{face: f, key: anchor.Sub(view.Apply(f.Center))}
	}

	slices.SortStableFunc(keyed, func(a, b depthKey) int {
		return compareDepth(a.key, b.key)
	})

	out := make([]model.Face, len(keyed))
	for i, k := range keyed {
		out[i] = k.face
	}
	return out
}

func compareDepth(a, b math.Vec3) int {
	if c := cmp.Compare(b.Z, a.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(b.X, a.X); c != 0 {
		return c
	}
	return cmp.Compare(b.Y, a.Y)
}
