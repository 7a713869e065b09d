package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/internal/engine/trajectory"
	"github.com/Faultbox/cuberoll/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Graphics.FPS)
	}
	if cfg.Scene.TiltX != -20 || cfg.Scene.TiltY != 45 {
		t.Errorf("expected tilt (-20, 45), got (%v, %v)", cfg.Scene.TiltX, cfg.Scene.TiltY)
	}
	if cfg.Scene.Light != (Vec3{0, 10, 100}) {
		t.Errorf("expected light [0 10 100], got %v", cfg.Scene.Light)
	}
	if len(cfg.Script.Steps) != 18 {
		t.Errorf("expected 18 script steps, got %d", len(cfg.Script.Steps))
	}
	if len(cfg.Palette.Shades) != 8 {
		t.Errorf("expected 8 shades, got %d", len(cfg.Palette.Shades))
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	times := cfg.Scene.InstantTimes()
	want := []int{0, 90, 180}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("InstantTimes() = %v, want %v", times, want)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultScriptRollsAlongFloor(t *testing.T) {
	cfg := Default()
	steps, err := cfg.Script.BuildSteps()
	if err != nil {
		t.Fatalf("BuildSteps: %v", err)
	}
	faces, err := cfg.Shape.Polyhedron().BuildFaces()
	if err != nil {
		t.Fatalf("BuildFaces: %v", err)
	}
	sub := cfg.Scene.SubFrames
	traj, err := trajectory.Build(faces, steps, sub)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	drop := float32(defaultDropHeight) / defaultSteps

	// Three pauses and five rolls to the right.
	snap, _ := traj.At(8*sub - 1)
	minV, maxV := model.Bounds(snap)
	wantMin := math.Vec3{X: 9, Y: -1 - 8*drop, Z: -1}
	wantMax := math.Vec3{X: 11, Y: 1 - 8*drop, Z: 1}
	if !minV.ApproxEqual(wantMin, 1e-3) || !maxV.ApproxEqual(wantMax, 1e-3) {
		t.Errorf("after rolling right bounds = %v..%v, want %v..%v", minV, maxV, wantMin, wantMax)
	}

	// Back where it started, one cube height lower.
	snap, _ = traj.At(traj.Len() - 1)
	minV, maxV = model.Bounds(snap)
	wantMin = math.Vec3{X: -1, Y: -3, Z: -1}
	wantMax = math.Vec3{X: 1, Y: -1, Z: 1}
	if !minV.ApproxEqual(wantMin, 1e-3) || !maxV.ApproxEqual(wantMax, 1e-3) {
		t.Errorf("end of loop bounds = %v..%v, want %v..%v", minV, maxV, wantMin, wantMax)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  fps: 60

scene:
  zoom: 50
  sub_frames: 12
  times: [0, 5]
  band: {min: -0.5, max: 0.5}

palette:
  shades: ["#000", "#808080", "#fff"]

script:
  steps:
    - angle: 90
      axis: [1, 0, 0]
      pivot: {kind: center, face: 2}
    - translate: [0, -1, 0]

output:
  headless: true
  dir: out
  gif: true

logging:
  level: "debug"
  log_file: "cuberoll.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Graphics.FPS)
	}
	if cfg.Scene.Zoom != 50 || cfg.Scene.SubFrames != 12 {
		t.Errorf("expected zoom 50 sub_frames 12, got %v %d", cfg.Scene.Zoom, cfg.Scene.SubFrames)
	}
	if cfg.Scene.TiltY != 45 {
		t.Errorf("expected default tilt_y 45 kept, got %v", cfg.Scene.TiltY)
	}
	if len(cfg.Script.Steps) != 2 {
		t.Fatalf("expected file steps to replace defaults, got %d steps", len(cfg.Script.Steps))
	}
	if p := cfg.Script.Steps[0].Pivot; p == nil || p.Kind != PivotCenter || p.Face != 2 {
		t.Errorf("unexpected pivot %+v", p)
	}
	if cfg.Script.Steps[1].Pivot != nil {
		t.Error("expected no pivot on second step")
	}
	if len(cfg.Palette.Shades) != 3 {
		t.Errorf("expected 3 shades, got %d", len(cfg.Palette.Shades))
	}
	if !cfg.Output.Headless || cfg.Output.Dir != "out" || !cfg.Output.GIF {
		t.Errorf("unexpected output %+v", cfg.Output)
	}
	if cfg.Logging.LogFile != "cuberoll.log" {
		t.Errorf("expected log file 'cuberoll.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "cuberoll.yaml"), []byte("graphics:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find cuberoll.yaml in current directory")
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "fullscreen then windowed",
			args: []string{"-fullscreen", "-windowed"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to win over windowed")
				}
			},
		},
		{
			name: "size and fps",
			args: []string{"-width", "1024", "-height", "768", "-fps", "24"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
					t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
				if cfg.Graphics.FPS != 24 {
					t.Errorf("expected fps 24, got %d", cfg.Graphics.FPS)
				}
			},
		},
		{
			name: "headless capture",
			args: []string{"-headless", "-frames", "12", "-out", "shots"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Output.Headless || cfg.Output.Frames != 12 || cfg.Output.Dir != "shots" {
					t.Errorf("unexpected output %+v", cfg.Output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			f := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			cfg := Default()
			f.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{Config: configPath, Width: 1920})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"zero fps", func(c *Config) { c.Graphics.FPS = 0 }},
		{"zero zoom", func(c *Config) { c.Scene.Zoom = 0 }},
		{"zero sub frames", func(c *Config) { c.Scene.SubFrames = 0 }},
		{"zero time step", func(c *Config) { c.Scene.TimeStep = 0 }},
		{"empty band", func(c *Config) { c.Scene.Band = Band{Min: 1, Max: 1} }},
		{"time past end", func(c *Config) { c.Scene.Times = []int{18 * 30} }},
		{"negative time", func(c *Config) { c.Scene.Times = []int{-1} }},
		{"sun at origin", func(c *Config) { c.Scene.Sun = &SunConfig{Distance: 0} }},
		{"no ghosts", func(c *Config) { c.Scene.Ghosts = 0 }},
		{"no steps", func(c *Config) { c.Script.Steps = nil }},
		{"bad pivot kind", func(c *Config) { c.Script.Steps[0].Pivot = &PivotConfig{Kind: "edge"} }},
		{"negative pivot face", func(c *Config) { c.Script.Steps[0].Pivot = &PivotConfig{Kind: PivotCenter, Face: -1} }},
		{"bad shade", func(c *Config) { c.Palette.Shades = []string{"#zzzzzz"} }},
		{"no shades", func(c *Config) { c.Palette.Shades = nil }},
		{"bad background", func(c *Config) { c.Palette.Background = "#12" }},
		{"shape without faces", func(c *Config) { c.Shape.Vertices = []Vec3{{0, 0, 0}} }},
		{"shape bad index", func(c *Config) {
			c.Shape.Vertices = []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
			c.Shape.Faces = [][]int{{0, 1, 5}}
		}},
		{"negative frames", func(c *Config) { c.Output.Frames = -1 }},
		{"headless without dir", func(c *Config) { c.Output.Headless = true; c.Output.Dir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestBuildSteps(t *testing.T) {
	faces, err := model.Cube().BuildFaces()
	if err != nil {
		t.Fatalf("BuildFaces: %v", err)
	}

	script := ScriptConfig{Steps: []StepConfig{
		{Angle: 10},
		{Angle: 10, Pivot: &PivotConfig{Point: Vec3{1, 2, 3}}},
		{Angle: 10, Pivot: &PivotConfig{Kind: PivotVertex, Face: 0, Vertex: 3}},
		{Angle: 10, Pivot: &PivotConfig{Kind: PivotCenter, Face: 2}},
	}}
	steps, err := script.BuildSteps()
	if err != nil {
		t.Fatalf("BuildSteps: %v", err)
	}

	if steps[0].Pivot != nil {
		t.Error("step without pivot should keep the origin")
	}

	want := []math.Vec3{
		{X: 1, Y: 2, Z: 3},
		{X: 1, Y: -1, Z: 1},
		{X: 0, Y: 1, Z: 0},
	}
	for i, w := range want {
		got, err := steps[i+1].Pivot(faces)
		if err != nil {
			t.Fatalf("step %d pivot: %v", i+1, err)
		}
		if got != w {
			t.Errorf("step %d pivot = %v, want %v", i+1, got, w)
		}
	}

	if _, err := (ScriptConfig{}).BuildSteps(); !errors.Is(err, trajectory.ErrEmptyScript) {
		t.Errorf("empty script error = %v, want ErrEmptyScript", err)
	}
}

func TestPaletteBuild(t *testing.T) {
	p, err := defaultPalette().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	def := palette.Default()
	for i := range def.Shades {
		if p.Shades[i] != def.Shades[i] {
			t.Errorf("shade %d = %v, want %v", i, p.Shades[i], def.Shades[i])
		}
	}
	if p.Outline != palette.Black {
		t.Errorf("outline = %v, want black", p.Outline)
	}

	if _, err := (PaletteConfig{Shades: []string{"#fff"}, Outline: "nope"}).Build(); !errors.Is(err, palette.ErrInvalidHex) {
		t.Errorf("bad outline error = %v, want ErrInvalidHex", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 640
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Graphics.Width != 640 {
		t.Errorf("expected width 640, got %d", loaded.Graphics.Width)
	}
	if len(loaded.Script.Steps) != len(cfg.Script.Steps) {
		t.Errorf("expected %d steps, got %d", len(cfg.Script.Steps), len(loaded.Script.Steps))
	}
	if p := loaded.Script.Steps[3].Pivot; p == nil || p.Kind != PivotVertex || p.Vertex != 3 {
		t.Errorf("unexpected pivot after reload: %+v", p)
	}
}

func TestLightPosition(t *testing.T) {
	s := Default().Scene
	if got := s.LightPosition(); got != (math.Vec3{X: 0, Y: 10, Z: 100}) {
		t.Errorf("LightPosition() = %v, want configured light", got)
	}

	s.Sun = &SunConfig{Longitude: 0, Latitude: 90, Distance: 50}
	if got := s.LightPosition(); !got.ApproxEqual(math.Vec3{Y: 50}, 1e-4) {
		t.Errorf("LightPosition() with sun overhead = %v, want (0,50,0)", got)
	}
	if got := s.Options().Light; !got.ApproxEqual(math.Vec3{Y: 50}, 1e-4) {
		t.Errorf("Options().Light = %v, want sun position", got)
	}
}
