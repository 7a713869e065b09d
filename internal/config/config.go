// Package config handles cuberoll configuration loading and management.
package config

import "errors"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Palette  PaletteConfig  `yaml:"palette"`
	Script   ScriptConfig   `yaml:"script"`
	Shape    ShapeConfig    `yaml:"shape"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Vec3 is a point or direction written as [x, y, z].
type Vec3 [3]float32

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPS        int  `yaml:"fps"`
}

// SceneConfig holds camera, timing and lighting settings.
type SceneConfig struct {
	Zoom      float32 `yaml:"zoom"`
	SubFrames int     `yaml:"sub_frames"` // sub-frames per script step
	TimeStep  int     `yaml:"time_step"`  // trajectory indices per tick

	// Times lists the instants shown together. When empty, Ghosts instants
	// are spaced GhostSpacing script steps apart.
	Times        []int `yaml:"times,flow"`
	Ghosts       int   `yaml:"ghosts"`
	GhostSpacing int   `yaml:"ghost_spacing"`

	TiltX  float32 `yaml:"tilt_x_deg"`
	TiltY  float32 `yaml:"tilt_y_deg"`
	Spin   float32 `yaml:"spin_deg"`
	Anchor Vec3    `yaml:"anchor,flow"`
	Light  Vec3    `yaml:"light,flow"`
	Band   Band    `yaml:"band"`

	// Sun, when set, places the light by angles and replaces Light.
	Sun *SunConfig `yaml:"sun,omitempty"`
}

// SunConfig places the light on a sphere around the origin. Angles are in
// degrees; longitude 0 is +Z.
type SunConfig struct {
	Longitude float32 `yaml:"longitude"`
	Latitude  float32 `yaml:"latitude"`
	Distance  float32 `yaml:"distance"`
}

// Band is the facing-ratio range spread over the palette.
type Band struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// PaletteConfig lists shades darkest first as hex strings.
type PaletteConfig struct {
	Shades     []string `yaml:"shades"`
	Outline    string   `yaml:"outline"`
	Background string   `yaml:"background"`
}

// ScriptConfig is the motion script.
type ScriptConfig struct {
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig is one script step. Angle is in degrees.
type StepConfig struct {
	Angle     float32      `yaml:"angle"`
	Axis      Vec3         `yaml:"axis,flow"`
	Pivot     *PivotConfig `yaml:"pivot,omitempty"`
	Translate Vec3         `yaml:"translate,flow"`
}

// Pivot kinds.
const (
	PivotFixed  = "fixed"
	PivotVertex = "vertex"
	PivotCenter = "center"
)

// PivotConfig selects the rotation pivot of a step. Vertex and center
// pivots are read from the previous snapshot.
type PivotConfig struct {
	Kind   string `yaml:"kind"`
	Point  Vec3   `yaml:"point,flow"`
	Face   int    `yaml:"face"`
	Vertex int    `yaml:"vertex"`
}

// ShapeConfig describes the rigid body. Empty means the unit cube.
type ShapeConfig struct {
	Vertices []Vec3  `yaml:"vertices,omitempty"`
	Faces    [][]int `yaml:"faces,omitempty,flow"`
}

// OutputConfig holds headless capture settings.
type OutputConfig struct {
	Headless bool   `yaml:"headless"`
	Dir      string `yaml:"dir"`
	Frames   int    `yaml:"frames"` // 0 means one full loop
	Prefix   string `yaml:"prefix"`
	GIF      bool   `yaml:"gif"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock animation.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  800,
			Height: 600,
			VSync:  true,
			FPS:    30,
		},
		Scene: SceneConfig{
			Zoom:         30,
			SubFrames:    30,
			TimeStep:     1,
			Ghosts:       3,
			GhostSpacing: 3,
			TiltX:        -20,
			TiltY:        45,
			Spin:         0.5,
			Anchor:       Vec3{0, 10, 100},
			Light:        Vec3{0, 10, 100},
			Band:         Band{Min: -0.003, Max: 0.003},
		},
		Palette: defaultPalette(),
		Script:  DefaultScript(),
		Output: OutputConfig{
			Dir:    "frames",
			Prefix: "frame",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
