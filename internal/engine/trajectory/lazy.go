package trajectory

import (
	"fmt"

	"github.com/Faultbox/cuberoll/internal/engine/model"
)

// Lazy computes snapshots on first access and memoizes them by index.
// It yields the same snapshots as Build. Not safe for concurrent use.
type Lazy struct {
	initial   []model.Face
	script    []Step
	subFrames int
	frames    [][]model.Face
}

// NewLazy validates the script and returns an empty memoizing trajectory.
func NewLazy(initial []model.Face, script []Step, subFrames int) (*Lazy, error) {
	if err := validate(script, subFrames); err != nil {
		return nil, err
	}
	return &Lazy{
		initial:   initial,
		script:    script,
		subFrames: subFrames,
		frames:    make([][]model.Face, 0, len(script)*subFrames),
	}, nil
}

// Len returns the number of snapshots the script produces.
func (l *Lazy) Len() int {
	return len(l.script) * l.subFrames
}

// Computed returns how many snapshots have been materialized so far.
func (l *Lazy) Computed() int {
	return len(l.frames)
}

// At returns the snapshot at index i, computing any missing predecessors.
func (l *Lazy) At(i int) ([]model.Face, error) {
	if i < 0 || i >= l.Len() {
		return nil, fmt.Errorf("index %d, length %d: %w", i, l.Len(), ErrIndexOutOfRange)
	}

	for len(l.frames) <= i {
		k := len(l.frames)
		prev := l.initial
		if k > 0 {
			prev = l.frames[k-1]
		}
		next, err := advance(prev, l.script[k/l.subFrames], l.subFrames)
		if err != nil {
			return nil, fmt.Errorf("frame %d (step %d): %w", k, k/l.subFrames, err)
		}
		l.frames = append(l.frames, next)
	}
	return l.frames[i], nil
}
