package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cuberoll/internal/engine/capture"
	"github.com/Faultbox/cuberoll/internal/engine/raster"
	"github.com/Faultbox/cuberoll/internal/logger"
)

// RunHeadless renders frames offscreen and writes them to the output
// directory. It renders every tick without pacing.
func (a *App) RunHeadless(ctx context.Context) error {
	out := a.Config.Output
	frames := out.Frames
	if frames == 0 {
		frames = a.LoopFrames()
	}

	rec, err := capture.NewRecorder(capture.Options{
		Dir:    out.Dir,
		Prefix: out.Prefix,
		FPS:    a.Config.Graphics.FPS,
		GIF:    out.GIF,
		Colors: a.GIFColors(),
	})
	if err != nil {
		return err
	}

	canvas := raster.New(a.Config.Graphics.Width, a.Config.Graphics.Height)
	logger.Info("headless capture started", zap.String("dir", out.Dir), zap.Int("frames", frames))

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("headless capture interrupted", zap.Int("written", rec.Count()))
			break
		}

		canvas.Clear(a.Background)
		if err := a.Scene.Render(canvas, a.State); err != nil {
			return fmt.Errorf("rendering frame %d: %w", i, err)
		}
		name, err := rec.WriteFrame(canvas.Image())
		if err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
		logger.Debug("frame written", zap.String("file", name), zap.Ints("times", a.State.Times))

		a.Scene.Advance(a.State)
	}

	gifName, err := rec.Close()
	if err != nil {
		return err
	}
	if gifName != "" {
		logger.Info("animation written", zap.String("file", gifName))
	}
	logger.Info("headless capture finished", zap.Int("frames", rec.Count()))
	return nil
}
