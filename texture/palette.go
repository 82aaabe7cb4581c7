// SPDX-License-Identifier: EPL-2.0

package texture

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/ik5/wavterrain/settings"
	"github.com/ik5/wavterrain/utils"
)

// ErrInvalidPalette is returned for fewer than two stops, positions outside
// [0, 1], descending positions, or a mix of positioned and unpositioned
// stops.
var ErrInvalidPalette = errors.New("invalid texture palette")

type stop struct {
	pos float64
	c   color.RGBA
}

// Palette maps a value in [0, 1] to a colour by interpolating between the
// two stops around it.
type Palette struct {
	stops []stop
}

// NewPalette resolves stop positions and validates them. A palette where no
// stop carries a position is spread evenly over [0, 1]. Equal neighbouring
// positions make a hard edge.
func NewPalette(stops []settings.Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 stops, got %d", ErrInvalidPalette, len(stops))
	}

	positioned := 0
	for _, s := range stops {
		if s.Positioned {
			positioned++
		}
	}
	if positioned != 0 && positioned != len(stops) {
		return nil, fmt.Errorf("%w: %d of %d stops have a position", ErrInvalidPalette, positioned, len(stops))
	}

	p := &Palette{stops: make([]stop, len(stops))}
	for i, s := range stops {
		pos := float64(i) / float64(len(stops)-1)
		if positioned > 0 {
			pos = s.Position
		}

		if math.IsNaN(pos) || pos < 0 || pos > 1 {
			return nil, fmt.Errorf("%w: stop %d position %v outside [0,1]", ErrInvalidPalette, i, pos)
		}
		if i > 0 && pos < p.stops[i-1].pos {
			return nil, fmt.Errorf("%w: stop %d position %v below previous %v", ErrInvalidPalette, i, pos, p.stops[i-1].pos)
		}

		p.stops[i] = stop{pos: pos, c: s.Color}
	}

	return p, nil
}

// At returns the colour for v. Values before the first stop take its colour,
// and likewise after the last.
func (p *Palette) At(v float64) color.RGBA {
	v = utils.Clamp01(v)

	first, last := p.stops[0], p.stops[len(p.stops)-1]
	if v <= first.pos {
		return first.c
	}
	if v >= last.pos {
		return last.c
	}

	// the first stop strictly above v; at a hard edge the later colour wins
	for i := 1; i < len(p.stops); i++ {
		hi := p.stops[i]
		if v >= hi.pos {
			continue
		}

		lo := p.stops[i-1]
		return mix(lo.c, hi.c, (v-lo.pos)/(hi.pos-lo.pos))
	}

	return last.c
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(utils.Lerp(float64(x), float64(y), t)))
	}

	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
