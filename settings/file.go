// SPDX-License-Identifier: EPL-2.0

package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ik5/wavterrain/audio"
	"github.com/ik5/wavterrain/grid"
)

// File is the on-disk schema for settings, in JSON or YAML. Every field is
// optional; absent fields keep the value they are applied over.
type File struct {
	AmplitudeScale *float64   `json:"amplitude_scale" yaml:"amplitude_scale"`
	Axis           string     `json:"axis" yaml:"axis"`
	Curve          string     `json:"curve" yaml:"curve"`
	Dips           *bool      `json:"dips" yaml:"dips"`
	Reducer        string     `json:"reducer" yaml:"reducer"`
	Interpolation  string     `json:"interpolation" yaml:"interpolation"`
	Reverse        *bool      `json:"reverse" yaml:"reverse"`
	Grid           *SizeFile  `json:"grid" yaml:"grid"`
	ChannelPolicy  string     `json:"channel_policy" yaml:"channel_policy"`
	AnalysisRate   *int       `json:"analysis_rate" yaml:"analysis_rate"`
	TextureMode    string     `json:"texture_mode" yaml:"texture_mode"`
	Palette        []StopFile `json:"palette" yaml:"palette"`
	Texture        *SizeFile  `json:"texture" yaml:"texture"`
	Noise          *NoiseFile `json:"noise" yaml:"noise"`
}

type SizeFile struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// StopFile is a palette entry; Color is a hex string such as "#7f4f45".
type StopFile struct {
	Color    string   `json:"color" yaml:"color"`
	Position *float64 `json:"position" yaml:"position"`
}

type NoiseFile struct {
	Seed        *int64   `json:"seed" yaml:"seed"`
	Frequency   *float64 `json:"frequency" yaml:"frequency"`
	Octaves     *int     `json:"octaves" yaml:"octaves"`
	Persistence *float64 `json:"persistence" yaml:"persistence"`
	Lacunarity  *float64 `json:"lacunarity" yaml:"lacunarity"`
	Blend       *float64 `json:"blend" yaml:"blend"`
}

// Load reads a settings file and applies it on top of Default. The format
// follows the extension: .json, .yaml or .yml.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	s, err := Parse(b, filepath.Ext(path))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse decodes data as "json" or "yaml" (a leading dot is allowed) and
// applies it on top of Default. Unknown keys are rejected.
func Parse(data []byte, format string) (Settings, error) {
	var f File

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document is a valid file that changes nothing
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	default:
		return Settings{}, fmt.Errorf("%w: unsupported settings format %q", ErrInvalidSettings, format)
	}

	s := Default()
	if err := ApplyFile(&s, &f); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// ApplyFile applies a parsed file onto dst.
func ApplyFile(dst *Settings, f *File) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination", ErrInvalidSettings)
	}
	if f == nil {
		return nil
	}

	var err error
	if f.AmplitudeScale != nil {
		dst.AmplitudeScale = *f.AmplitudeScale
	}
	if f.Axis != "" {
		if dst.Axis, err = ParseAxis(f.Axis); err != nil {
			return err
		}
	}
	if f.Curve != "" {
		if dst.Curve, err = ParseCurve(f.Curve); err != nil {
			return err
		}
	}
	if f.Dips != nil {
		dst.Dips = *f.Dips
	}
	if f.Reducer != "" {
		if dst.Reducer, err = grid.ParseReducer(f.Reducer); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	}
	if f.Interpolation != "" {
		if dst.Interpolation, err = grid.ParseInterpolation(f.Interpolation); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	}
	if f.Reverse != nil {
		dst.Reverse = *f.Reverse
	}
	if f.Grid != nil {
		dst.GridWidth, dst.GridHeight = f.Grid.Width, f.Grid.Height
	}
	if f.ChannelPolicy != "" {
		if dst.ChannelPolicy, err = audio.ParseChannelPolicy(f.ChannelPolicy); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	}
	if f.AnalysisRate != nil {
		dst.AnalysisRate = *f.AnalysisRate
	}
	if f.TextureMode != "" {
		if dst.TextureMode, err = ParseTextureMode(f.TextureMode); err != nil {
			return err
		}
	}
	if f.Texture != nil {
		dst.TextureWidth, dst.TextureHeight = f.Texture.Width, f.Texture.Height
	}

	if f.Palette != nil {
		palette := make([]Stop, 0, len(f.Palette))
		for i, entry := range f.Palette {
			c, err := ParseColor(entry.Color)
			if err != nil {
				return fmt.Errorf("palette[%d]: %w", i, err)
			}
			stop := Even(c)
			if entry.Position != nil {
				stop = At(*entry.Position, c)
			}
			palette = append(palette, stop)
		}
		dst.Palette = palette
	}

	if n := f.Noise; n != nil {
		if n.Seed != nil {
			dst.Noise.Seed = *n.Seed
		}
		if n.Frequency != nil {
			dst.Noise.Frequency = *n.Frequency
		}
		if n.Octaves != nil {
			dst.Noise.Octaves = *n.Octaves
		}
		if n.Persistence != nil {
			dst.Noise.Persistence = *n.Persistence
		}
		if n.Lacunarity != nil {
			dst.Noise.Lacunarity = *n.Lacunarity
		}
		if n.Blend != nil {
			dst.Noise.Blend = *n.Blend
		}
	}

	return nil
}
