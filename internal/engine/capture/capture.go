// Package capture writes rendered frames to disk as a numbered PNG
// sequence and, optionally, a looping animated GIF.
package capture

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Recorder saves frames in order.
type Recorder struct {
	outputDir string
	prefix    string

	gif      bool
	delay    int // hundredths of a second per GIF frame
	colors   color.Palette
	animated *gif.GIF

	count int
}

// Options configures a Recorder.
type Options struct {
	Dir    string
	Prefix string
	FPS    int

	// GIF also collects frames into <prefix>.gif, written by Close.
	GIF bool
	// Colors is the GIF palette. Nil uses the web-safe palette.
	Colors color.Palette
}

// NewRecorder creates the output directory and returns a recorder.
func NewRecorder(opts Options) (*Recorder, error) {
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	if opts.Prefix == "" {
		opts.Prefix = "frame"
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = palette.WebSafe
	}
	delay := 100 / max(opts.FPS, 1)

	return &Recorder{
		outputDir: opts.Dir,
		prefix:    opts.Prefix,
		gif:       opts.GIF,
		delay:     max(delay, 2),
		colors:    colors,
		animated:  &gif.GIF{LoopCount: 0},
	}, nil
}

// Count returns the number of frames written so far.
func (r *Recorder) Count() int {
	return r.count
}

// FrameName returns the PNG path for frame n.
func (r *Recorder) FrameName(n int) string {
	return filepath.Join(r.outputDir, fmt.Sprintf("%s_%04d.png", r.prefix, n))
}

// WriteFrame saves img as the next PNG in the sequence.
func (r *Recorder) WriteFrame(img image.Image) (string, error) {
	filename := r.FrameName(r.count)
	if err := SavePNG(filename, img); err != nil {
		return "", err
	}

	if r.gif {
		r.appendGIF(img)
	}
	r.count++
	return filename, nil
}

// WritePixels saves bottom-up RGBA rows, as read back from OpenGL.
func (r *Recorder) WritePixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}
	return r.WriteFrame(img)
}

func (r *Recorder) appendGIF(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(b, r.colors)
	xdraw.FloydSteinberg.Draw(frame, b, img, b.Min)
	r.animated.Image = append(r.animated.Image, frame)
	r.animated.Delay = append(r.animated.Delay, r.delay)
}

// Close writes the GIF if one was requested and returns its path.
func (r *Recorder) Close() (string, error) {
	if !r.gif || len(r.animated.Image) == 0 {
		return "", nil
	}

	filename := filepath.Join(r.outputDir, r.prefix+".gif")
	err := writeFile(filename, func(w io.Writer) error {
		if err := gif.EncodeAll(w, r.animated); err != nil {
			return fmt.Errorf("encoding GIF: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return filename, nil
}

// SavePNG encodes img to filename.
func SavePNG(filename string, img image.Image) error {
	return writeFile(filename, func(w io.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		return nil
	})
}

// writeFile creates filename and hands it to encode.
func writeFile(filename string, encode func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	return encodeAndClose(file, filename, encode)
}

// encodeAndClose runs encode on w and always closes it. A close failure is
// returned unless encode already failed.
func encodeAndClose(w io.WriteCloser, name string, encode func(io.Writer) error) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", name, cerr)
		}
	}()
	return encode(w)
}

// FlipRows copies tightly packed RGBA pixels into an image, flipping
// vertically since OpenGL has its origin at the bottom left.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
