package scene

import (
	"github.com/Faultbox/cuberoll/pkg/math"
)

// State is the mutable per-loop render state: the view transform that
// keeps turning and the trajectory instants currently shown.
type State struct {
	View  math.Mat4
	Times []int
}

// NewState tilts the view about X then Y (degrees) and copies times.
func NewState(tiltX, tiltY float32, times []int) *State {
	view := math.Identity()
	view.RotateAboutX(math.Radians(tiltX)).RotateAboutY(math.Radians(tiltY))

	t := make([]int, len(times))
	copy(t, times)
	return &State{View: view, Times: t}
}

// GhostTimes returns count instants spaced apart by spacing indices,
// starting at 0.
func GhostTimes(count, spacing int) []int {
	times := make([]int, count)
	for i := range times {
		times[i] = i * spacing
	}
	return times
}
