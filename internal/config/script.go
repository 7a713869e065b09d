package config

import (
	"fmt"

	"github.com/Faultbox/cuberoll/internal/engine/lighting"
	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/internal/engine/scene"
	"github.com/Faultbox/cuberoll/internal/engine/trajectory"
	"github.com/Faultbox/cuberoll/pkg/math"
)

// Stock script layout: a staircase of one cube height per loop.
const (
	defaultDropHeight = 2
	defaultSteps      = 18
)

// DefaultScript returns the stock loop: a pause, five rolls to the right,
// a pause, five rolls back to the left, all while drifting downward.
//
// Rolls pivot on the front face's bottom corner in the direction of travel.
// The front face lists its corners counter-clockwise from top right, so
// each roll shifts the leading corner's index by one.
func DefaultScript() ScriptConfig {
	drift := Vec3{0, -defaultDropHeight / float32(defaultSteps), 0}

	idle := func(n int) []StepConfig {
		out := make([]StepConfig, n)
		for i := range out {
			out[i] = StepConfig{Axis: Vec3{0, 0, 1}, Translate: drift}
		}
		return out
	}
	roll := func(angle float32, corners ...int) []StepConfig {
		out := make([]StepConfig, len(corners))
		for i, c := range corners {
			out[i] = StepConfig{
				Angle:     angle,
				Axis:      Vec3{0, 0, 1},
				Pivot:     &PivotConfig{Kind: PivotVertex, Face: 0, Vertex: c},
				Translate: drift,
			}
		}
		return out
	}

	var steps []StepConfig
	steps = append(steps, idle(3)...)
	steps = append(steps, roll(-90, 3, 0, 1, 2, 3)...)
	steps = append(steps, idle(4)...)
	steps = append(steps, roll(90, 3, 2, 1, 0, 3)...)
	steps = append(steps, idle(1)...)

	return ScriptConfig{Steps: steps}
}

func defaultPalette() PaletteConfig {
	p := palette.Default()
	shades := make([]string, len(p.Shades))
	for i, c := range p.Shades {
		shades[i] = c.Hex()
	}
	return PaletteConfig{Shades: shades, Outline: p.Outline.Hex(), Background: "#f2efe6"}
}

// BackgroundColor parses the clear color. Empty means white.
func (p PaletteConfig) BackgroundColor() (palette.Color, error) {
	if p.Background == "" {
		return palette.White, nil
	}
	c, err := palette.ParseHex(p.Background)
	if err != nil {
		return palette.Color{}, fmt.Errorf("palette background: %w", err)
	}
	return c, nil
}

// Vec converts to the math vector type.
func (v Vec3) Vec() math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// BuildSteps converts the script to trajectory steps.
func (s ScriptConfig) BuildSteps() ([]trajectory.Step, error) {
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("script: %w", trajectory.ErrEmptyScript)
	}

	steps := make([]trajectory.Step, len(s.Steps))
	for i, sc := range s.Steps {
		pivot, err := sc.Pivot.pivotFunc()
		if err != nil {
			return nil, fmt.Errorf("script step %d: %w", i, err)
		}
		steps[i] = trajectory.Step{
			Angle:     sc.Angle,
			Axis:      sc.Axis.Vec(),
			Pivot:     pivot,
			Translate: sc.Translate.Vec(),
		}
	}
	return steps, nil
}

func (p *PivotConfig) pivotFunc() (trajectory.PivotFunc, error) {
	if p == nil {
		return nil, nil
	}
	switch p.Kind {
	case "", PivotFixed:
		return trajectory.FixedPivot(p.Point.Vec()), nil
	case PivotVertex:
		return trajectory.VertexPivot(p.Face, p.Vertex), nil
	case PivotCenter:
		return trajectory.CenterPivot(p.Face), nil
	default:
		return nil, fmt.Errorf("pivot kind %q: %w", p.Kind, ErrInvalid)
	}
}

// Polyhedron returns the configured shape, or the cube when none is set.
func (s ShapeConfig) Polyhedron() model.Polyhedron {
	if len(s.Vertices) == 0 {
		return model.Cube()
	}
	vertices := make([]math.Vec3, len(s.Vertices))
	for i, v := range s.Vertices {
		vertices[i] = v.Vec()
	}
	return model.Polyhedron{Vertices: vertices, Faces: s.Faces}
}

// Build parses the hex shades and outline.
func (p PaletteConfig) Build() (palette.Palette, error) {
	if len(p.Shades) == 0 {
		return palette.Palette{}, fmt.Errorf("palette has no shades: %w", ErrInvalid)
	}

	shades := make([]palette.Color, len(p.Shades))
	for i, h := range p.Shades {
		c, err := palette.ParseHex(h)
		if err != nil {
			return palette.Palette{}, fmt.Errorf("palette shade %d: %w", i, err)
		}
		shades[i] = c
	}

	outline := palette.Black
	if p.Outline != "" {
		c, err := palette.ParseHex(p.Outline)
		if err != nil {
			return palette.Palette{}, fmt.Errorf("palette outline: %w", err)
		}
		outline = c
	}

	return palette.Palette{Shades: shades, Outline: outline}, nil
}

// InstantTimes returns the trajectory indices shown together at start.
func (s SceneConfig) InstantTimes() []int {
	if len(s.Times) > 0 {
		out := make([]int, len(s.Times))
		copy(out, s.Times)
		return out
	}
	return scene.GhostTimes(s.Ghosts, s.GhostSpacing*s.SubFrames)
}

// LightPosition returns Light, or the Sun placement when configured.
func (s SceneConfig) LightPosition() math.Vec3 {
	if s.Sun != nil {
		return lighting.SunPosition(s.Sun.Longitude, s.Sun.Latitude, s.Sun.Distance)
	}
	return s.Light.Vec()
}

// Options returns the renderer settings.
func (s SceneConfig) Options() scene.Config {
	return scene.Config{
		Light:       s.LightPosition(),
		Anchor:      s.Anchor.Vec(),
		Band:        lighting.Band{InMin: s.Band.Min, InMax: s.Band.Max},
		TimeStep:    s.TimeStep,
		SpinDegrees: s.Spin,
	}
}

// Validate checks ranges and cross-references. It does not build the
// trajectory, so pivot references are checked later by trajectory.Build.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
	}

	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		return invalid("graphics size %dx%d", g.Width, g.Height)
	}
	if g.FPS <= 0 {
		return invalid("graphics fps %d", g.FPS)
	}

	s := c.Scene
	if s.Zoom <= 0 {
		return invalid("scene zoom %v", s.Zoom)
	}
	if s.SubFrames <= 0 {
		return invalid("scene sub_frames %d", s.SubFrames)
	}
	if s.TimeStep <= 0 {
		return invalid("scene time_step %d", s.TimeStep)
	}
	if !(s.Band.Max > s.Band.Min) {
		return invalid("scene band [%v, %v]", s.Band.Min, s.Band.Max)
	}
	if s.Sun != nil && s.Sun.Distance <= 0 {
		return invalid("scene sun distance %v", s.Sun.Distance)
	}
	if len(s.Times) == 0 && (s.Ghosts <= 0 || s.GhostSpacing < 0) {
		return invalid("scene ghosts %d spacing %d", s.Ghosts, s.GhostSpacing)
	}

	if len(c.Script.Steps) == 0 {
		return invalid("script has no steps")
	}
	total := len(c.Script.Steps) * s.SubFrames
	for _, t := range s.InstantTimes() {
		if t < 0 || t >= total {
			return invalid("scene time %d outside [0, %d)", t, total)
		}
	}
	for i, st := range c.Script.Steps {
		if st.Pivot == nil {
			continue
		}
		if _, err := st.Pivot.pivotFunc(); err != nil {
			return fmt.Errorf("script step %d: %w", i, err)
		}
		if st.Pivot.Face < 0 || st.Pivot.Vertex < 0 {
			return invalid("script step %d pivot face %d vertex %d", i, st.Pivot.Face, st.Pivot.Vertex)
		}
	}

	if _, err := c.Palette.Build(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Palette.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if len(c.Shape.Vertices) > 0 {
		if len(c.Shape.Faces) == 0 {
			return invalid("shape has vertices but no faces")
		}
		if _, err := c.Shape.Polyhedron().BuildFaces(); err != nil {
			return fmt.Errorf("%w: shape: %w", ErrInvalid, err)
		}
	}

	if c.Output.Frames < 0 {
		return invalid("output frames %d", c.Output.Frames)
	}
	if c.Output.Headless && c.Output.Dir == "" {
		return invalid("output dir is empty")
	}

	return nil
}
