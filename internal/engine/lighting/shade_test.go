package lighting

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/pkg/math"
)

func square(t *testing.T, z float32, normalUp bool) model.Face {
	t.Helper()
	v := []math.Vec3{{X: 1, Y: 1, Z: z}, {X: -1, Y: 1, Z: z}, {X: -1, Y: -1, Z: z}, {X: 1, Y: -1, Z: z}}
	if !normalUp {
		v[1], v[3] = v[3], v[1]
	}
	f, err := model.NewFace(v)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	return f
}

func TestShadeExtremes(t *testing.T) {
	p := palette.Default()
	light := math.Vec3{Z: 100}

	up := square(t, 0, true)
	if up.Normal != math.ZAxis {
		t.Fatalf("expected +Z normal, got %v", up.Normal)
	}
	down := square(t, 0, false)
	if down.Normal != (math.Vec3{Z: -1}) {
		t.Fatalf("expected -Z normal, got %v", down.Normal)
	}

	tests := []struct {
		name string
		face model.Face
		want int
	}{
		{"facing light", up, p.Len() - 1},
		{"facing away", down, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, err := FacingRatio(tt.face, light)
			if err != nil {
				t.Fatalf("FacingRatio: %v", err)
			}
			idx, err := ShadeIndex(ratio, DefaultBand, p.Len())
			if err != nil {
				t.Fatalf("ShadeIndex: %v", err)
			}
			if idx != tt.want {
				t.Errorf("index = %d, want %d (ratio %v)", idx, tt.want, ratio)
			}

			c, err := Shade(tt.face, light, DefaultBand, p)
			if err != nil {
				t.Fatalf("Shade: %v", err)
			}
			if c != p.Shades[tt.want] {
				t.Errorf("Shade = %v, want %v", c, p.Shades[tt.want])
			}
		})
	}
}

func TestShadeIndexBoundaries(t *testing.T) {
	band := Band{InMin: -1, InMax: 1}
	tests := []struct {
		ratio  float32
		shades int
		want   int
	}{
		{-1, 8, 0},
		{1, 8, 7},
		{0, 8, 3}, // 3.5 floors to 3
		{-5, 8, 0},
		{5, 8, 7},
		{0.999, 8, 6},
		{1, 1, 0},
		{math32.Inf(1), 4, 3},
		{math32.Inf(-1), 4, 0},
	}

	for _, tt := range tests {
		got, err := ShadeIndex(tt.ratio, band, tt.shades)
		if err != nil {
			t.Errorf("ShadeIndex(%v, %d) error: %v", tt.ratio, tt.shades, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ShadeIndex(%v, %d) = %d, want %d", tt.ratio, tt.shades, got, tt.want)
		}
	}
}

func TestShadeIndexErrors(t *testing.T) {
	tests := []struct {
		name   string
		ratio  float32
		band   Band
		shades int
	}{
		{"no shades", 0, DefaultBand, 0},
		{"empty band", 0, Band{InMin: 1, InMax: 1}, 8},
		{"inverted band", 0, Band{InMin: 1, InMax: -1}, 8},
		{"nan ratio", math32.NaN(), DefaultBand, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ShadeIndex(tt.ratio, tt.band, tt.shades)
			if !errors.Is(err, palette.ErrPaletteIndex) {
				t.Errorf("error = %v, want ErrPaletteIndex", err)
			}
		})
	}
}

func TestFacingRatioLightAtCenter(t *testing.T) {
	f := square(t, 0, true)
	if _, err := FacingRatio(f, f.Center); !errors.Is(err, math.ErrDegenerateVector) {
		t.Errorf("error = %v, want ErrDegenerateVector", err)
	}
}

func TestRemap(t *testing.T) {
	if got := Remap(0.5, 0, 1, 10, 20); got != 15 {
		t.Errorf("Remap = %v, want 15", got)
	}
}

func TestSunPosition(t *testing.T) {
	tests := []struct {
		lon, lat float32
		want     math.Vec3
	}{
		{0, 0, math.Vec3{Z: 10}},
		{90, 0, math.Vec3{X: 10}},
		{0, 90, math.Vec3{Y: 10}},
	}
	for _, tt := range tests {
		got := SunPosition(tt.lon, tt.lat, 10)
		if !got.ApproxEqual(tt.want, 1e-4) {
			t.Errorf("SunPosition(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
		}
	}
}
