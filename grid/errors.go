// SPDX-License-Identifier: EPL-2.0

package grid

import "errors"

var (
	// ErrInvalidDimensions is returned for a grid width or height below 1, or
	// for a value slice that does not match width*height.
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")

	ErrUnknownReducer       = errors.New("unknown reducer")
	ErrUnknownInterpolation = errors.New("unknown interpolation")
)
