// SPDX-License-Identifier: EPL-2.0

package displace

import (
	"math"

	"github.com/ik5/wavterrain/settings"
	"github.com/ik5/wavterrain/utils"
)

const (
	expSteepness = 3.0
	logSteepness = 9.0
)

// Shape applies the response curve c to v. Every curve maps [0, 1] onto
// [0, 1] with Shape(0) = 0 and Shape(1) = 1; v is clamped first.
func Shape(c settings.Curve, v float64) float64 {
	v = utils.Clamp01(v)

	switch c {
	case settings.CurveExponential:
		return math.Expm1(expSteepness*v) / math.Expm1(expSteepness)
	case settings.CurveLog:
		return math.Log1p(logSteepness*v) / math.Log1p(logSteepness)
	default:
		return v
	}
}

// Offset is the signed distance a vertex moves for grid value v. With dips
// enabled the shaped value is spread over [-1, 1] so silence pulls the
// surface down.
func Offset(v float64, s settings.Settings) float64 {
	h := Shape(s.Curve, v)
	if s.Dips {
		h = 2*h - 1
	}

	return h * s.AmplitudeScale
}
