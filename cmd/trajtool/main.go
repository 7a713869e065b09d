// trajtool inspects cuberoll motion scripts and their precomputed trajectories.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cuberoll/internal/config"
	"github.com/Faultbox/cuberoll/internal/engine/camera"
	"github.com/Faultbox/cuberoll/internal/engine/capture"
	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/internal/engine/raster"
	"github.com/Faultbox/cuberoll/internal/engine/scene"
	"github.com/Faultbox/cuberoll/internal/engine/trajectory"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "frame":
		cmdFrame(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`trajtool - cuberoll trajectory utility

Usage:
  trajtool <command> [options]

Commands:
  info  [-config file]                  Show script and trajectory summary
  dump  [-config file] <index>          Print the face snapshot at index as YAML
  frame [-config file] <index> <out>    Render the snapshot at index to a PNG
  config [path]                         Write the default config (stdout if no path)

Examples:
  trajtool info
  trajtool dump -config cuberoll.yaml 89
  trajtool frame 120 frame.png
  trajtool config cuberoll.yaml`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig parses -config from args and returns the config and the
// remaining positional arguments.
func loadConfig(name string, args []string) (*config.Config, []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	path := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.LoadFile(*path); err != nil {
			fatalf("%v", err)
		}
	}
	return cfg, fs.Args()
}

// source builds a lazily evaluated trajectory, so dump and frame only
// compute the prefix they need.
func source(cfg *config.Config) *trajectory.Lazy {
	faces, err := cfg.Shape.Polyhedron().BuildFaces()
	if err != nil {
		fatalf("shape: %v", err)
	}
	steps, err := cfg.Script.BuildSteps()
	if err != nil {
		fatalf("%v", err)
	}
	lazy, err := trajectory.NewLazy(faces, steps, cfg.Scene.SubFrames)
	if err != nil {
		fatalf("%v", err)
	}
	return lazy
}

func parseIndex(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		fatalf("bad index %q", s)
	}
	return i
}

func cmdInfo(args []string) {
	cfg, _ := loadConfig("info", args)

	faces, err := cfg.Shape.Polyhedron().BuildFaces()
	if err != nil {
		fatalf("shape: %v", err)
	}
	steps, err := cfg.Script.BuildSteps()
	if err != nil {
		fatalf("%v", err)
	}
	traj, err := trajectory.Build(faces, steps, cfg.Scene.SubFrames)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Faces:      %d\n", len(faces))
	fmt.Printf("Steps:      %d\n", len(steps))
	fmt.Printf("Sub-frames: %d\n", traj.SubFrames())
	fmt.Printf("Snapshots:  %d\n", traj.Len())
	fmt.Printf("Instants:   %v\n", cfg.Scene.InstantTimes())
	fmt.Println()

	fmt.Println("Bounds at end of each step:")
	for i := range steps {
		snap, err := traj.At((i+1)*traj.SubFrames() - 1)
		if err != nil {
			fatalf("%v", err)
		}
		lo, hi := model.Bounds(snap)
		fmt.Printf("  %2d  angle %6.1f  min (%6.2f %6.2f %6.2f)  max (%6.2f %6.2f %6.2f)\n",
			i, cfg.Script.Steps[i].Angle, lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}
}

type faceDump struct {
	Vertices []config.Vec3 `yaml:"vertices,flow"`
	Center   config.Vec3   `yaml:"center,flow"`
	Normal   config.Vec3   `yaml:"normal,flow"`
}

type snapshotDump struct {
	Index int        `yaml:"index"`
	Faces []faceDump `yaml:"faces"`
}

func cmdDump(args []string) {
	cfg, rest := loadConfig("dump", args)
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trajtool dump [-config file] <index>")
		os.Exit(1)
	}
	index := parseIndex(rest[0])

	snap, err := source(cfg).At(index)
	if err != nil {
		fatalf("%v", err)
	}

	out := snapshotDump{Index: index}
	for _, f := range snap {
		d := faceDump{
			Center: config.Vec3{f.Center.X, f.Center.Y, f.Center.Z},
			Normal: config.Vec3{f.Normal.X, f.Normal.Y, f.Normal.Z},
		}
		for _, v := range f.Vertices {
			d.Vertices = append(d.Vertices, config.Vec3{v.X, v.Y, v.Z})
		}
		out.Faces = append(out.Faces, d)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		fatalf("%v", err)
	}
	enc.Close()
}

func cmdFrame(args []string) {
	cfg, rest := loadConfig("frame", args)
	if len(rest) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: trajtool frame [-config file] <index> <out.png>")
		os.Exit(1)
	}
	index := parseIndex(rest[0])

	pal, err := cfg.Palette.Build()
	if err != nil {
		fatalf("%v", err)
	}
	bg, err := cfg.Palette.BackgroundColor()
	if err != nil {
		fatalf("%v", err)
	}

	g := cfg.Graphics
	sc, err := scene.New(cfg.Scene.Options(), source(cfg), camera.New(g.Width, g.Height, cfg.Scene.Zoom), pal)
	if err != nil {
		fatalf("%v", err)
	}

	canvas := raster.New(g.Width, g.Height)
	canvas.Clear(bg)
	if err := sc.Render(canvas, scene.NewState(cfg.Scene.TiltX, cfg.Scene.TiltY, []int{index})); err != nil {
		fatalf("%v", err)
	}

	img := canvas.Image()
	if err := capture.SavePNG(rest[1], img); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", rest[1], g.Width, g.Height)
}

func cmdConfig(args []string) {
	cfg := config.Default()
	if len(args) == 0 {
		data, err := cfg.Marshal()
		if err != nil {
			fatalf("%v", err)
		}
		os.Stdout.Write(data)
		return
	}
	if err := cfg.SaveTo(args[0]); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Wrote %s\n", args[0])
}
