package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestWriteFrameSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	r, err := NewRecorder(Options{Dir: dir, Prefix: "cube", FPS: 30})
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	for i := 0; i < 3; i++ {
		name, err := r.WriteFrame(solid(4, 4, color.RGBA{R: 255, A: 255}))
		if err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
		if want := filepath.Join(dir, fmt.Sprintf("cube_%04d.png", i)); name != want {
			t.Errorf("frame %d name = %s, want %s", i, name, want)
		}
	}
	if r.Count() != 3 {
		t.Errorf("Count() = %d, want 3", r.Count())
	}

	f, err := os.Open(r.FrameName(1))
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel = %v, want red", got)
	}

	// No GIF requested.
	if name, err := r.Close(); err != nil || name != "" {
		t.Errorf("Close() = %q, %v; want no file", name, err)
	}
}

func TestGIF(t *testing.T) {
	dir := t.TempDir()
	colors := color.Palette{color.Black, color.White}
	r, err := NewRecorder(Options{Dir: dir, Prefix: "loop", FPS: 25, GIF: true, Colors: colors})
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	r.WriteFrame(solid(8, 8, color.RGBA{A: 255}))
	r.WriteFrame(solid(8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255}))

	name, err := r.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open gif: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Fatalf("gif frames = %d, want 2", len(anim.Image))
	}
	if anim.Delay[0] != 4 {
		t.Errorf("delay = %d, want 4", anim.Delay[0])
	}
	if got := anim.Image[1].ColorIndexAt(3, 3); got != 1 {
		t.Errorf("second frame index = %d, want 1 (white)", got)
	}
}

func TestFlipRows(t *testing.T) {
	// Two rows: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRows: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}

	if _, err := FlipRows(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

func TestEncodeAndClose(t *testing.T) {
	errClose := errors.New("disk full")
	errEncode := errors.New("bad image")

	tests := []struct {
		name      string
		closeErr  error
		encodeErr error
		want      error
	}{
		{"ok", nil, nil, nil},
		{"close fails", errClose, nil, errClose},
		{"encode fails", nil, errEncode, errEncode},
		{"both fail keeps encode error", errClose, errEncode, errEncode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &closeRecorder{err: tt.closeErr}
			err := encodeAndClose(w, "out.png", func(dst io.Writer) error {
				if tt.encodeErr != nil {
					return tt.encodeErr
				}
				return png.Encode(dst, solid(2, 2, color.RGBA{A: 255}))
			})

			if !w.closed {
				t.Error("writer not closed")
			}
			if tt.want == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSavePNGReportsCreateError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "shot.png")
	if err := SavePNG(missing, solid(2, 2, color.RGBA{A: 255})); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}
