package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config     string
	Debug      bool
	Windowed   bool
	Fullscreen bool
	Headless   bool
	Width      int
	Height     int
	FPS        int
	Frames     int
	Out        string
}

// RegisterFlags binds the overrides to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.BoolVar(&f.Headless, "headless", false, "Render to image files instead of a window")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.IntVar(&f.FPS, "fps", 0, "Frames per second")
	fs.IntVar(&f.Frames, "frames", 0, "Number of frames to capture in headless mode")
	fs.StringVar(&f.Out, "out", "", "Output directory for captured frames")
	return f
}

// apply applies overrides to cfg.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if f.Headless {
		cfg.Output.Headless = true
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.FPS > 0 {
		cfg.Graphics.FPS = f.FPS
	}
	if f.Frames > 0 {
		cfg.Output.Frames = f.Frames
	}
	if f.Out != "" {
		cfg.Output.Dir = f.Out
	}
}
