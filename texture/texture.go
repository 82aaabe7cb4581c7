// SPDX-License-Identifier: EPL-2.0

// Package texture paints images from a control grid: a colour texture that
// follows the terrain and a greyscale height map.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/ik5/wavterrain/grid"
	"github.com/ik5/wavterrain/settings"
	"github.com/ik5/wavterrain/utils"
)

var (
	ErrNilGrid  = errors.New("control grid is nil")
	ErrNilImage = errors.New("image is nil")
)

// Size returns the texture size for g under s: the configured size, or one
// pixel per grid cell.
func Size(g *grid.ControlGrid, s settings.Settings) (int, int) {
	if s.TextureWidth > 0 && s.TextureHeight > 0 {
		return s.TextureWidth, s.TextureHeight
	}

	return g.Width(), g.Height()
}

// pixelCoord maps pixel i of n onto [0, 1] so the first and last pixels sit
// on the grid edges.
func pixelCoord(i, n int) float64 {
	if n <= 1 {
		return 0
	}

	return float64(i) / float64(n-1)
}

// Synthesize paints a texture for g. It returns a nil image and no error
// when the texture mode is off.
func Synthesize(g *grid.ControlGrid, s settings.Settings) (*image.RGBA, error) {
	if s.TextureMode == settings.TextureOff {
		return nil, nil
	}
	if g == nil {
		return nil, ErrNilGrid
	}

	palette, err := NewPalette(s.Palette)
	if err != nil {
		return nil, err
	}

	var noise *fbm
	switch s.TextureMode {
	case settings.TextureGradient:
	case settings.TextureNoiseBlend:
		noise = newFBM(s.Noise)
	default:
		return nil, fmt.Errorf("unknown texture mode %v", s.TextureMode)
	}

	w, h := Size(g, s)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for py := range h {
		v := pixelCoord(py, h)
		for px := range w {
			u := pixelCoord(px, w)
			val := g.SampleWith(s.Interpolation, u, v)

			if noise != nil {
				// both axes use the width so noise features stay square
				n := noise.Eval(
					float64(px)/float64(w)*s.Noise.Frequency,
					float64(py)/float64(w)*s.Noise.Frequency,
				)
				val = utils.Lerp(val, utils.Clamp01(n), s.Noise.Blend)
			}

			img.SetRGBA(px, py, palette.At(val))
		}
	}

	return img, nil
}

// HeightMap renders g as a 16-bit greyscale image of w x h pixels. A size of
// zero uses the grid size.
func HeightMap(g *grid.ControlGrid, w, h int, interp grid.Interpolation) (*image.Gray16, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if w <= 0 || h <= 0 {
		w, h = g.Width(), g.Height()
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	for py := range h {
		v := pixelCoord(py, h)
		for px := range w {
			val := g.SampleWith(interp, pixelCoord(px, w), v)
			img.SetGray16(px, py, color.Gray16{Y: uint16(math.Round(val * math.MaxUint16))})
		}
	}

	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrNilImage
	}

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
