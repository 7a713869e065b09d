// Package trajectory precomputes the pose history of a rigid body driven
// by a motion script.
//
// Each script step is spread over a fixed number of sub-frames. For every
// sub-frame the step's pivot is evaluated on the previous snapshot, then
// every vertex is rotated by Angle/subFrames about (Axis, pivot) and moved
// by Translate/subFrames. Index 0 holds the first sub-frame of the first
// step; the last index holds the end of the last step.
package trajectory

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/pkg/math"
)

var (
	ErrIndexOutOfRange = errors.New("trajectory index out of range")
	ErrNoSubFrames     = errors.New("sub-frame count must be positive")
	ErrEmptyScript     = errors.New("motion script is empty")
	ErrPivotReference  = errors.New("pivot references missing face or vertex")
)

// Step is one instruction of a motion script.
type Step struct {
	Angle     float32   // degrees over the whole step
	Axis      math.Vec3 // rotation direction; zero means +Z
	Pivot     PivotFunc // nil means the origin
	Translate math.Vec3 // displacement over the whole step
}

// Source is a time-indexed sequence of face snapshots.
type Source interface {
	Len() int
	At(i int) ([]model.Face, error)
}

// Trajectory is the fully materialized pose history. It is immutable once
// built and safe to read from any number of callers.
type Trajectory struct {
	frames    [][]model.Face
	subFrames int
}

// Build computes every snapshot of script applied to initial.
func Build(initial []model.Face, script []Step, subFrames int) (*Trajectory, error) {
	if err := validate(script, subFrames); err != nil {
		return nil, err
	}

	total := len(script) * subFrames
	frames := make([][]model.Face, total)
	prev := initial
	for i := 0; i < total; i++ {
		next, err := advance(prev, script[i/subFrames], subFrames)
		if err != nil {
			return nil, fmt.Errorf("frame %d (step %d): %w", i, i/subFrames, err)
		}
		frames[i] = next
		prev = next
	}

	return &Trajectory{frames: frames, subFrames: subFrames}, nil
}

// Len returns the number of snapshots.
func (t *Trajectory) Len() int {
	return len(t.frames)
}

// SubFrames returns the number of sub-frames each step was expanded to.
func (t *Trajectory) SubFrames() int {
	return t.subFrames
}

// At returns the snapshot at index i. The returned slice must not be modified.
func (t *Trajectory) At(i int) ([]model.Face, error) {
	if i < 0 || i >= len(t.frames) {
		return nil, fmt.Errorf("index %d, length %d: %w", i, len(t.frames), ErrIndexOutOfRange)
	}
	return t.frames[i], nil
}

func validate(script []Step, subFrames int) error {
	if subFrames <= 0 {
		return fmt.Errorf("%d: %w", subFrames, ErrNoSubFrames)
	}
	if len(script) == 0 {
		return ErrEmptyScript
	}
	return nil
}

// advance moves every face of prev by one sub-frame of step.
func advance(prev []model.Face, step Step, subFrames int) ([]model.Face, error) {
	pivot := math.Vec3{}
	if step.Pivot != nil {
		p, err := step.Pivot(prev)
		if err != nil {
			return nil, err
		}
		pivot = p
	}

	axis := step.Axis
	if axis == (math.Vec3{}) {
		axis = math.ZAxis
	}

	n := float32(subFrames)
	angle := math.Radians(step.Angle / n)
	delta, err := step.Translate.Divide(n)
	if err != nil {
		return nil, err
	}

	move := func(v math.Vec3) (math.Vec3, error) {
		r, err := v.RotateAround(pivot, axis, angle)
		if err != nil {
			return math.Vec3{}, err
		}
		return r.Add(delta), nil
	}

	next := make([]model.Face, len(prev))
	for i, f := range prev {
		moved, err := f.Moved(move)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}
		next[i] = moved
	}
	return next, nil
}
