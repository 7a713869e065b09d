// Package scene renders selected instants of a precomputed trajectory with
// painter's-algorithm depth sorting and palette-quantized shading.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cuberoll/internal/engine/camera"
	"github.com/Faultbox/cuberoll/internal/engine/lighting"
	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/internal/engine/trajectory"
	"github.com/Faultbox/cuberoll/internal/logger"
	"github.com/Faultbox/cuberoll/pkg/math"
)

// Surface receives one filled, outlined polygon per visible face.
type Surface interface {
	DrawPolygon(points []math.Vec2, outline, fill palette.Color)
}

// Config contains scene configuration options.
type Config struct {
	Light       math.Vec3     // light position, world space
	Anchor      math.Vec3     // depth reference, view space
	Band        lighting.Band // facing-ratio range mapped onto the palette
	TimeStep    int           // trajectory indices advanced per tick
	SpinDegrees float32       // view rotation about Y per tick
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Light:       math.Vec3{X: 0, Y: 10, Z: 100},
		Anchor:      math.Vec3{X: 0, Y: 10, Z: 100},
		Band:        lighting.DefaultBand,
		TimeStep:    1,
		SpinDegrees: 0.5,
	}
}

// Scene is the read-only part of rendering: trajectory, camera, palette
// and lighting. Per-tick mutable data lives in State.
type Scene struct {
	config  Config
	source  trajectory.Source
	camera  camera.Camera
	palette palette.Palette
}

// New creates a scene over source.
func New(cfg Config, source trajectory.Source, cam camera.Camera, p palette.Palette) (*Scene, error) {
	if source == nil || source.Len() == 0 {
		return nil, fmt.Errorf("empty trajectory: %w", trajectory.ErrIndexOutOfRange)
	}
	if p.Len() == 0 {
		return nil, fmt.Errorf("empty palette: %w", palette.ErrPaletteIndex)
	}
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = 1
	}

	logger.Debug("scene created",
		zap.Int("frames", source.Len()),
		zap.Int("shades", p.Len()),
		zap.Int("time_step", cfg.TimeStep),
	)

	return &Scene{
		config:  cfg,
		source:  source,
		camera:  cam,
		palette: p,
	}, nil
}

// Camera returns the projection camera.
func (s *Scene) Camera() camera.Camera {
	return s.camera
}

// SetCamera replaces the projection camera, e.g. after a window resize.
func (s *Scene) SetCamera(c camera.Camera) {
	s.camera = c
}

// Len returns the trajectory length.
func (s *Scene) Len() int {
	return s.source.Len()
}

// Render draws every face at state.Times onto surface, back to front.
// Nothing is drawn on error.
func (s *Scene) Render(surface Surface, state *State) error {
	faces, err := s.gather(state.Times)
	if err != nil {
		return err
	}

	sorted := DepthSort(faces, state.View, s.config.Anchor)

	type call struct {
		points []math.Vec2
		fill   palette.Color
	}
	calls := make([]call, len(sorted))
	for i, f := range sorted {
		fill, err := lighting.Shade(f, s.config.Light, s.config.Band, s.palette)
		if err != nil {
			return fmt.Errorf("shading face %d: %w", i, err)
		}
		calls[i] = call{points: s.camera.ProjectAll(f.Vertices, state.View), fill: fill}
	}

	for _, c := range calls {
		surface.DrawPolygon(c.points, s.palette.Outline, c.fill)
	}
	return nil
}

// Advance moves every time index forward by the configured step, wrapping
// to 0 at the end of the trajectory, and turns the view a little.
func (s *Scene) Advance(state *State) {
	last := s.source.Len() - 1
	for i, t := range state.Times {
		next := t + s.config.TimeStep
		if t >= last || next > last {
			next = 0
		}
		state.Times[i] = next
	}
	state.View.RotateAboutY(math.Radians(s.config.SpinDegrees))
}

// gather concatenates the snapshots at times in order.
func (s *Scene) gather(times []int) ([]model.Face, error) {
	var faces []model.Face
	for _, t := range times {
		snapshot, err := s.source.At(t)
		if err != nil {
			return nil, err
		}
		faces = append(faces, snapshot...)
	}
	return faces, nil
}
