// SPDX-License-Identifier: EPL-2.0

package settings

import (
	"fmt"
	"strings"
)

// Axis is the direction vertices are pushed along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	// AxisNormal pushes each vertex along its own surface normal.
	AxisNormal
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	case AxisNormal:
		return "normal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y", "":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	case "n", "normal":
		return AxisNormal, nil
	}

	return AxisY, fmt.Errorf("%w: unknown axis %q", ErrInvalidSettings, s)
}

// Curve is the response curve applied to a grid value before scaling.
type Curve int

const (
	CurveLinear Curve = iota
	CurveExponential
	CurveLog
)

func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveExponential:
		return "exponential"
	case CurveLog:
		return "log"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return CurveLinear, nil
	case "exp", "exponential":
		return CurveExponential, nil
	case "log", "logarithmic":
		return CurveLog, nil
	}

	return CurveLinear, fmt.Errorf("%w: unknown curve %q", ErrInvalidSettings, s)
}

// TextureMode selects whether and how a texture is generated.
type TextureMode int

const (
	TextureOff TextureMode = iota
	TextureGradient
	// TextureNoiseBlend mixes simplex noise into the control value before
	// the palette lookup.
	TextureNoiseBlend
)

func (m TextureMode) String() string {
	switch m {
	case TextureOff:
		return "off"
	case TextureGradient:
		return "gradient"
	case TextureNoiseBlend:
		return "noise-blend"
	default:
		return fmt.Sprintf("TextureMode(%d)", int(m))
	}
}

func ParseTextureMode(s string) (TextureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return TextureOff, nil
	case "gradient":
		return TextureGradient, nil
	case "noise-blend", "noise_blend", "noise":
		return TextureNoiseBlend, nil
	}

	return TextureOff, fmt.Errorf("%w: unknown texture mode %q", ErrInvalidSettings, s)
}
