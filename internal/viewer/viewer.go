// Package viewer runs the animation in an SDL2 window with OpenGL.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cuberoll/internal/app"
	"github.com/Faultbox/cuberoll/internal/engine/capture"
	"github.com/Faultbox/cuberoll/internal/engine/input"
	"github.com/Faultbox/cuberoll/internal/engine/pacing"
	"github.com/Faultbox/cuberoll/internal/engine/renderer"
	"github.com/Faultbox/cuberoll/internal/engine/scene"
	"github.com/Faultbox/cuberoll/internal/engine/window"
	"github.com/Faultbox/cuberoll/internal/logger"
)

// frameRenderer is the part of the renderer one presented frame uses.
type frameRenderer interface {
	scene.Surface
	Begin()
	End()
	ReadPixels() ([]byte, int, int, error)
}

// swapper presents the back buffer.
type swapper interface {
	SwapBuffers()
}

// Viewer owns the window, GL renderer and loop timing.
type Viewer struct {
	app         *app.App
	running     bool
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	pacer       *pacing.Pacer
	shots       *capture.Recorder
	shotPending bool
}

// New opens the window and creates the renderer.
func New(a *app.App) (*Viewer, error) {
	g := a.Config.Graphics
	v := &Viewer{app: a}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "cuberoll",
		Width:      g.Width,
		Height:     g.Height,
		Fullscreen: g.Fullscreen,
		VSync:      g.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The drawable may differ from the requested size on HiDPI screens.
	width, height := v.window.Size()

	// Renderer needs the GL context created by the window.
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: a.Background,
		LineWidth:  1,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.Scene.SetCamera(a.Scene.Camera().Resize(width, height))

	v.input = input.New()
	v.pacer = pacing.New(g.FPS, nil)

	logger.Info("viewer initialized", zap.Int("fps", g.FPS))
	return v, nil
}

// Run drives the loop until the window is closed.
func (v *Viewer) Run() error {
	v.running = true
	frames := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		if !v.pacer.Ready() {
			v.pacer.Wait()
			continue
		}

		if err := v.present(v.renderer, v.window); err != nil {
			return err
		}
		v.app.Scene.Advance(v.app.State)

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frames),
				zap.Uint64("skipped", v.pacer.Skipped()),
				zap.Ints("times", v.app.State.Times),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := v.window.Size()
			v.renderer.Resize(width, height)
			v.app.Scene.SetCamera(v.app.Scene.Camera().Resize(width, height))
		case input.EventScreenshot:
			v.shotPending = true
		}
	}
}

// present draws the current state and swaps buffers. A pending screenshot
// is read back after End and before the swap, while the back buffer still
// holds the frame just drawn.
func (v *Viewer) present(r frameRenderer, w swapper) error {
	r.Begin()
	if err := v.app.Scene.Render(r, v.app.State); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	r.End()

	if v.shotPending {
		v.shotPending = false
		v.screenshot(r)
	}

	w.SwapBuffers()
	return nil
}

// screenshot saves the back buffer into the output directory.
func (v *Viewer) screenshot(r frameRenderer) {
	if v.shots == nil {
		out := v.app.Config.Output
		rec, err := capture.NewRecorder(capture.Options{Dir: out.Dir, Prefix: "screenshot"})
		if err != nil {
			logger.Warn("screenshot unavailable", zap.Error(err))
			return
		}
		v.shots = rec
	}

	pixels, w, h, err := r.ReadPixels()
	if err != nil {
		logger.Warn("screenshot skipped", zap.Error(err))
		return
	}
	name, err := v.shots.WritePixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
