// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Lerp interpolates linearly between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits x to [0, 1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}

	return x
}
