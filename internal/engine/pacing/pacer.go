// Package pacing decides which loop iterations produce a frame.
package pacing

import (
	"time"

	"github.com/chewxy/math32"
)

// Clock returns the time elapsed since some fixed origin.
type Clock func() time.Duration

// MonotonicClock returns a Clock measuring from the moment of the call.
func MonotonicClock() Clock {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Pacer gates a busy loop down to a fixed frame rate. A tick is
// round(FPS * elapsed seconds); a frame is due whenever the tick changes.
type Pacer struct {
	fps     int
	clock   Clock
	last    int64
	started bool
	skipped uint64
}

// New creates a pacer. A nil clock uses MonotonicClock.
func New(fps int, clock Clock) *Pacer {
	if fps <= 0 {
		fps = 1
	}
	if clock == nil {
		clock = MonotonicClock()
	}
	return &Pacer{fps: fps, clock: clock}
}

// FPS returns the target frame rate.
func (p *Pacer) FPS() int {
	return p.fps
}

// Tick returns the current tick number.
func (p *Pacer) Tick() int64 {
	secs := float32(p.clock().Seconds())
	return int64(math32.Round(float32(p.fps) * secs))
}

// Ready reports whether a new tick has started since the last frame and,
// if so, records it.
func (p *Pacer) Ready() bool {
	now := p.Tick()
	if p.started && now == p.last {
		p.skipped++
		return false
	}
	p.started = true
	p.last = now
	return true
}

// Skipped returns how many Ready calls returned false.
func (p *Pacer) Skipped() uint64 {
	return p.skipped
}

// Wait sleeps until the next tick is due. It keeps the windowed loop from
// spinning a core.
func (p *Pacer) Wait() {
	frame := time.Second / time.Duration(p.fps)
	elapsed := p.clock()
	next := time.Duration(p.last)*frame + frame/2
	if d := next - elapsed; d > 0 && d <= frame {
		time.Sleep(d)
	}
}
