// SPDX-License-Identifier: EPL-2.0

package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/wavterrain/utils"
)

// Interpolation selects how a ControlGrid is sampled between cells.
type Interpolation int

const (
	Bilinear Interpolation = iota
	Bicubic
)

func (i Interpolation) String() string {
	switch i {
	case Bilinear:
		return "bilinear"
	case Bicubic:
		return "bicubic"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation accepts "bilinear" (or "") and "bicubic".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bilinear", "linear":
		return Bilinear, nil
	case "bicubic", "cubic":
		return Bicubic, nil
	default:
		return Bilinear, fmt.Errorf("%w: %q", ErrUnknownInterpolation, s)
	}
}

// ControlGrid is an immutable width x height field of values in [0, 1],
// stored row-major.
type ControlGrid struct {
	width  int
	height int
	values []float64
}

// New copies values into a grid. Values are clamped into [0, 1] and NaN
// becomes 0.
func New(width, height int, values []float64) (*ControlGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrInvalidDimensions, len(values), width, height)
	}

	g := &ControlGrid{width: width, height: height, values: make([]float64, len(values))}
	for i, v := range values {
		if math.IsInf(v, 0) {
			v = math.Copysign(1, v)
		}
		g.values[i] = utils.Clamp01(v)
	}

	return g, nil
}

func (g *ControlGrid) Width() int  { return g.width }
func (g *ControlGrid) Height() int { return g.height }
func (g *ControlGrid) Len() int    { return len(g.values) }

// At returns the cell at column x, row y. Out of range indices are clamped
// to the border.
func (g *ControlGrid) At(x, y int) float64 {
	x = min(max(x, 0), g.width-1)
	y = min(max(y, 0), g.height-1)

	return g.values[y*g.width+x]
}

// Values returns a copy of the row-major cell values.
func (g *ControlGrid) Values() []float64 {
	out := make([]float64, len(g.values))
	copy(out, g.values)

	return out
}

// Max returns the largest cell value.
func (g *ControlGrid) Max() float64 {
	var m float64
	for _, v := range g.values {
		m = max(m, v)
	}

	return m
}

// cellCoord maps a parametric coordinate onto a cell index and the
// fractional offset towards the next cell.
func cellCoord(t float64, size int) (int, float64) {
	if size == 1 {
		return 0, 0
	}

	f := utils.Clamp01(t) * float64(size-1)
	i := int(math.Floor(f))
	if i >= size-1 {
		return size - 1, 0
	}

	return i, f - float64(i)
}

// Sample returns the bilinear interpolation of the grid at (u, v). Both
// coordinates are clamped into [0, 1]; (0, 0) is the first cell and (1, 1)
// the last.
func (g *ControlGrid) Sample(u, v float64) float64 {
	x, tx := cellCoord(u, g.width)
	y, ty := cellCoord(v, g.height)

	top := utils.Lerp(g.At(x, y), g.At(x+1, y), tx)
	bottom := utils.Lerp(g.At(x, y+1), g.At(x+1, y+1), tx)

	return utils.Lerp(top, bottom, ty)
}

// SampleCubic is the Catmull-Rom counterpart of Sample. The spline can
// overshoot between steep cells, so the result is clamped into [0, 1].
func (g *ControlGrid) SampleCubic(u, v float64) float64 {
	x, tx := cellCoord(u, g.width)
	y, ty := cellCoord(v, g.height)

	var rows [4]float64
	for j := range rows {
		yy := y - 1 + j
		rows[j] = utils.CubicInterpolate(
			g.At(x-1, yy), g.At(x, yy), g.At(x+1, yy), g.At(x+2, yy), tx)
	}

	return utils.Clamp01(utils.CubicInterpolate(rows[0], rows[1], rows[2], rows[3], ty))
}

// SampleWith dispatches to Sample or SampleCubic.
func (g *ControlGrid) SampleWith(interp Interpolation, u, v float64) float64 {
	if interp == Bicubic {
		return g.SampleCubic(u, v)
	}

	return g.Sample(u, v)
}
