// Package app wires configuration into a ready-to-render animation and
// runs the headless capture loop.
package app

import (
	"fmt"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cuberoll/internal/config"
	"github.com/Faultbox/cuberoll/internal/engine/camera"
	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/internal/engine/scene"
	"github.com/Faultbox/cuberoll/internal/engine/trajectory"
	"github.com/Faultbox/cuberoll/internal/logger"
)

// App holds everything needed to render frames.
type App struct {
	Config     *config.Config
	Trajectory *trajectory.Trajectory
	Scene      *scene.Scene
	State      *scene.State
	Palette    palette.Palette
	Background palette.Color
}

// New precomputes the trajectory and sets up the scene.
func New(cfg *config.Config) (*App, error) {
	pal, err := cfg.Palette.Build()
	if err != nil {
		return nil, err
	}
	bg, err := cfg.Palette.BackgroundColor()
	if err != nil {
		return nil, err
	}

	traj, err := BuildTrajectory(cfg)
	if err != nil {
		return nil, err
	}

	cam := camera.New(cfg.Graphics.Width, cfg.Graphics.Height, cfg.Scene.Zoom)
	sc, err := scene.New(cfg.Scene.Options(), traj, cam, pal)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	return &App{
		Config:     cfg,
		Trajectory: traj,
		Scene:      sc,
		State:      scene.NewState(cfg.Scene.TiltX, cfg.Scene.TiltY, cfg.Scene.InstantTimes()),
		Palette:    pal,
		Background: bg,
	}, nil
}

// BuildTrajectory precomputes the configured script on the configured shape.
func BuildTrajectory(cfg *config.Config) (*trajectory.Trajectory, error) {
	faces, err := cfg.Shape.Polyhedron().BuildFaces()
	if err != nil {
		return nil, fmt.Errorf("building shape: %w", err)
	}
	steps, err := cfg.Script.BuildSteps()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	traj, err := trajectory.Build(faces, steps, cfg.Scene.SubFrames)
	if err != nil {
		return nil, fmt.Errorf("building trajectory: %w", err)
	}

	logger.Info("trajectory built",
		zap.Int("faces", len(faces)),
		zap.Int("steps", len(steps)),
		zap.Int("snapshots", traj.Len()),
		zap.Duration("took", time.Since(start)),
	)
	return traj, nil
}

// LoopFrames is the number of ticks before the animation repeats.
func (a *App) LoopFrames() int {
	step := max(a.Config.Scene.TimeStep, 1)
	return (a.Trajectory.Len() + step - 1) / step
}

// GIFColors returns the palette used when quantizing captured frames.
func (a *App) GIFColors() color.Palette {
	colors := color.Palette{a.Background, a.Palette.Outline}
	for _, c := range a.Palette.Shades {
		colors = append(colors, c)
	}
	return colors
}
