// Package lighting turns face orientation into discrete palette shades.
package lighting

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cuberoll/internal/engine/model"
	"github.com/Faultbox/cuberoll/internal/engine/palette"
	"github.com/Faultbox/cuberoll/pkg/math"
)

// Band is the facing-ratio input range mapped onto the palette.
// Ratios at or below InMin select the first shade, at or above InMax the last.
type Band struct {
	InMin float32 `yaml:"min"`
	InMax float32 `yaml:"max"`
}

// DefaultBand is a narrow window around zero tuned for a distant light.
var DefaultBand = Band{InMin: -0.003, InMax: 0.003}

// Remap linearly maps v from [inMin, inMax] to [outMin, outMax] without clamping.
func Remap(v, inMin, inMax, outMin, outMax float32) float32 {
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// FacingRatio returns the cosine between the face normal and the ray from
// the face center to light.
func FacingRatio(face model.Face, light math.Vec3) (float32, error) {
	ray, err := light.Sub(face.Center).Normalize()
	if err != nil {
		return 0, fmt.Errorf("light ray: %w", err)
	}
	return face.Normal.Dot(ray), nil
}

// ShadeIndex quantizes ratio into [0, shades-1]: remap band onto the index
// range, floor, then clamp.
func ShadeIndex(ratio float32, band Band, shades int) (int, error) {
	if shades <= 0 {
		return 0, fmt.Errorf("no shades: %w", palette.ErrPaletteIndex)
	}
	if !(band.InMax > band.InMin) {
		return 0, fmt.Errorf("empty band [%v, %v]: %w", band.InMin, band.InMax, palette.ErrPaletteIndex)
	}

	x := math32.Floor(Remap(ratio, band.InMin, band.InMax, 0, float32(shades-1)))
	if math32.IsNaN(x) {
		return 0, fmt.Errorf("ratio %v: %w", ratio, palette.ErrPaletteIndex)
	}
	x = max(0, min(x, float32(shades-1)))

	idx := int(x)
	if idx < 0 || idx >= shades {
		return 0, fmt.Errorf("index %d: %w", idx, palette.ErrPaletteIndex)
	}
	return idx, nil
}

// Shade returns the palette color for face lit from light.
func Shade(face model.Face, light math.Vec3, band Band, p palette.Palette) (palette.Color, error) {
	ratio, err := FacingRatio(face, light)
	if err != nil {
		return palette.Color{}, err
	}
	idx, err := ShadeIndex(ratio, band, p.Len())
	if err != nil {
		return palette.Color{}, err
	}
	return p.At(idx)
}
