// Package renderer draws scene polygons with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/internal/engine/shader"
	"github.com/Faultbox/cuberoll/internal/logger"
	"github.com/Faultbox/cuberoll/pkg/math"
)

// ErrEmptyFramebuffer is returned when reading back a drawable with no area.
var ErrEmptyFramebuffer = errors.New("framebuffer has no area")

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background palette.Color
	LineWidth  float32
}

// Renderer batches polygons per frame and draws them in one call.
type Renderer struct {
	config Config

	program    uint32
	projection int32
	vao        uint32
	vbo        uint32

	batch *Batch
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.CompileProgram(shader.SolidVertex, shader.SolidFragment)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}

	r := &Renderer{
		config:     cfg,
		program:    program,
		projection: shader.Uniform(program, "uProjection"),
		batch:      NewBatch(),
	}
	r.batch.LineWidth = cfg.LineWidth
	r.createBuffers()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// createBuffers creates the VAO/VBO for the pos(3) + color(4) stream.
func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Close releases GL objects.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears the screen and starts a new batch.
func (r *Renderer) Begin() {
	red, green, blue, alpha := r.config.Background.Floats()
	gl.ClearColor(red, green, blue, alpha)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.batch.Reset()
}

// DrawPolygon queues a polygon for this frame.
func (r *Renderer) DrawPolygon(points []math.Vec2, outline, fill palette.Color) {
	r.batch.DrawPolygon(points, outline, fill)
}

// End uploads the batch and draws it.
func (r *Renderer) End() {
	vertices := r.batch.Vertices()
	if len(vertices) == 0 {
		return
	}

	proj := Ortho(r.config.Width, r.config.Height)
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.projection, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(r.batch.Len()))
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows. It fails
// with ErrEmptyFramebuffer while the drawable has no area.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h := r.config.Width, r.config.Height
	size, err := pixelBufferSize(w, h)
	if err != nil {
		return nil, 0, 0, err
	}
	pixels := make([]byte, size)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h, nil
}

// pixelBufferSize returns the byte length of a w x h RGBA read-back.
func pixelBufferSize(w, h int) (int, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("read %dx%d pixels: %w", w, h, ErrEmptyFramebuffer)
	}
	return w * h * 4, nil
}
