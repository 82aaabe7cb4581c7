// SPDX-License-Identifier: EPL-2.0

package settings

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ik5/wavterrain/audio"
	"github.com/ik5/wavterrain/grid"
)

// ErrInvalidSettings wraps every validation and parse failure.
var ErrInvalidSettings = errors.New("invalid generation settings")

const (
	MaxGridSize    = 4096
	MaxTextureSize = 8192
	MaxOctaves     = 16
)

// Noise configures the simplex noise used by the noise-blend texture mode.
type Noise struct {
	Seed        int64
	Frequency   float64 // features per texture width
	Octaves     int
	Persistence float64 // amplitude falloff per octave
	Lacunarity  float64 // frequency growth per octave
	Blend       float64 // 0 keeps the control value, 1 is pure noise
}

// Settings holds every option of a generation run. It is passed by value and
// no stage modifies it.
type Settings struct {
	AmplitudeScale float64
	Axis           Axis
	Curve          Curve
	// Dips lets quiet passages push below the rest position.
	Dips bool

	Reducer       grid.Reducer
	Interpolation grid.Interpolation
	Reverse       bool
	// GridWidth and GridHeight of 0 size the grid from the vertex count.
	GridWidth  int
	GridHeight int

	ChannelPolicy audio.ChannelPolicy
	AnalysisRate  int

	TextureMode TextureMode
	Palette     []Stop
	// TextureWidth and TextureHeight of 0 use the grid size.
	TextureWidth  int
	TextureHeight int
	Noise         Noise
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		AmplitudeScale: 1,
		Axis:           AxisY,
		Curve:          CurveLinear,
		Reducer:        grid.ReducerMean,
		Interpolation:  grid.Bilinear,
		ChannelPolicy:  audio.ChannelAverage,
		TextureMode:    TextureOff,
		Palette:        DefaultPalette(),
		Noise: Noise{
			Seed:        1,
			Frequency:   4,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			Blend:       0.25,
		},
	}
}

// Clone returns a copy that shares no memory with s.
func (s Settings) Clone() Settings {
	s.Palette = slices.Clone(s.Palette)
	return s
}

// Validate checks ranges and enum values. The palette is checked by the
// texture package, which owns its semantics.
func (s Settings) Validate() error {
	if !finite(s.AmplitudeScale) {
		return fmt.Errorf("%w: amplitude scale must be finite", ErrInvalidSettings)
	}
	if s.Axis < AxisX || s.Axis > AxisNormal {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.Axis)
	}
	if s.Curve < CurveLinear || s.Curve > CurveLog {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.Curve)
	}
	if s.TextureMode < TextureOff || s.TextureMode > TextureNoiseBlend {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.TextureMode)
	}
	if s.Reducer != grid.ReducerMean && s.Reducer != grid.ReducerPeak {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.Reducer)
	}
	if s.Interpolation != grid.Bilinear && s.Interpolation != grid.Bicubic {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.Interpolation)
	}
	if s.ChannelPolicy != audio.ChannelAverage && s.ChannelPolicy != audio.ChannelFirst {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.ChannelPolicy)
	}

	if err := checkSize("grid", s.GridWidth, s.GridHeight, MaxGridSize); err != nil {
		return err
	}
	if err := checkSize("texture", s.TextureWidth, s.TextureHeight, MaxTextureSize); err != nil {
		return err
	}

	if s.AnalysisRate < 0 {
		return fmt.Errorf("%w: analysis rate must be >= 0", ErrInvalidSettings)
	}

	n := s.Noise
	switch {
	case !finite(n.Frequency) || !finite(n.Persistence) || !finite(n.Lacunarity) || !finite(n.Blend):
		return fmt.Errorf("%w: noise parameters must be finite", ErrInvalidSettings)
	case n.Frequency <= 0:
		return fmt.Errorf("%w: noise frequency must be > 0", ErrInvalidSettings)
	case n.Octaves < 1 || n.Octaves > MaxOctaves:
		return fmt.Errorf("%w: noise octaves must be in 1..%d", ErrInvalidSettings, MaxOctaves)
	case n.Persistence <= 0 || n.Persistence > 1:
		return fmt.Errorf("%w: noise persistence must be in (0,1]", ErrInvalidSettings)
	case n.Lacunarity < 1:
		return fmt.Errorf("%w: noise lacunarity must be >= 1", ErrInvalidSettings)
	case n.Blend < 0 || n.Blend > 1:
		return fmt.Errorf("%w: noise blend must be in [0,1]", ErrInvalidSettings)
	}

	return nil
}

// checkSize accepts 0x0 (derived later) or both sides in 1..limit.
func checkSize(name string, w, h, limit int) error {
	if w == 0 && h == 0 {
		return nil
	}
	if w <= 0 || h <= 0 || w > limit || h > limit {
		return fmt.Errorf("%w: %s size %dx%d must be 0x0 or within 1..%d", ErrInvalidSettings, name, w, h, limit)
	}

	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
