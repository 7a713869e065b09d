// Package math provides the vector and matrix types used by the geometry pipeline.
package math

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	ErrDegenerateVector = errors.New("degenerate vector: zero length")
	ErrDivisionByZero   = errors.New("division of vector by zero")
)

// Axis unit vectors.
var (
	YAxis = Vec3{0, 1, 0}
	ZAxis = Vec3{0, 0, 1}
)

// Vec3 is a 3D vector. All operations return a new value.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Divide returns v / s.
func (v Vec3) Divide(s float32) (Vec3, error) {
	if s == 0 {
		return Vec3{}, ErrDivisionByZero
	}
	return Vec3{v.X / s, v.Y / s, v.Z / s}, nil
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector pointing the same way as v.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Length()
	if l == 0 {
		return Vec3{}, fmt.Errorf("normalize %v: %w", v, ErrDegenerateVector)
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, nil
}

// Transform returns v treated as a point (w=1) transformed by m.
func (v Vec3) Transform(m Mat4) Vec3 {
	return m.Apply(v)
}

// RotateAround rotates v by angle radians about the line through pivot
// with direction axis (Rodrigues' formula). axis need not be unit length.
func (v Vec3) RotateAround(pivot, axis Vec3, angle float32) (Vec3, error) {
	k, err := axis.Normalize()
	if err != nil {
		return Vec3{}, fmt.Errorf("rotation axis: %w", err)
	}
	p := v.Sub(pivot)
	sin, cos := math32.Sincos(angle)

	rotated := p.Scale(cos).
		Add(k.Cross(p).Scale(sin)).
		Add(k.Scale(k.Dot(p) * (1 - cos)))
	return rotated.Add(pivot), nil
}

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return math32.Abs(v.X-other.X) <= eps &&
		math32.Abs(v.Y-other.Y) <= eps &&
		math32.Abs(v.Z-other.Z) <= eps
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
