// SPDX-License-Identifier: EPL-2.0

package settings

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Stop is one palette entry. Position is only meaningful when Positioned is
// set; a palette without any positioned stop is spread evenly over [0, 1].
type Stop struct {
	Color      color.RGBA
	Position   float64
	Positioned bool
}

// At returns a positioned stop.
func At(pos float64, c color.RGBA) Stop {
	return Stop{Color: c, Position: pos, Positioned: true}
}

// Even returns a stop that takes its position from its index.
func Even(c color.RGBA) Stop {
	return Stop{Color: c}
}

var (
	Grass = color.RGBA{R: 39, G: 126, B: 35, A: 255}
	Cliff = color.RGBA{R: 105, G: 79, B: 69, A: 255}
	Snow  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// DefaultPalette runs from grass in the valleys through cliff rock to snow
// on the peaks.
func DefaultPalette() []Stop {
	return []Stop{At(0, Grass), At(0.5, Cliff), At(1, Snow)}
}

// ParseColor reads "#rrggbb", "#rrggbbaa" or the short "#rgb" form. The
// leading '#' is optional.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: bad colour %q", ErrInvalidSettings, s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: bad colour %q", ErrInvalidSettings, s)
	}

	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor is the inverse of ParseColor, always in "#rrggbbaa" form.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
