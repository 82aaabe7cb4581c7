// SPDX-License-Identifier: EPL-2.0

package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/wavterrain/audio"
)

// Reducer turns the samples of one window into a single amplitude.
type Reducer int

const (
	// ReducerMean is the mean absolute amplitude of the window.
	ReducerMean Reducer = iota
	// ReducerPeak is the largest absolute amplitude of the window.
	ReducerPeak
)

func (r Reducer) String() string {
	switch r {
	case ReducerMean:
		return "mean"
	case ReducerPeak:
		return "peak"
	default:
		return fmt.Sprintf("Reducer(%d)", int(r))
	}
}

// ParseReducer accepts "mean" (or "") and "peak".
func ParseReducer(s string) (Reducer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean", "average":
		return ReducerMean, nil
	case "peak", "max":
		return ReducerPeak, nil
	default:
		return ReducerMean, fmt.Errorf("%w: %q", ErrUnknownReducer, s)
	}
}

func (r Reducer) reduce(window []float32) float64 {
	var acc float64
	for _, s := range window {
		a := math.Abs(float64(s))
		if r == ReducerPeak {
			acc = max(acc, a)
		} else {
			acc += a
		}
	}
	if r == ReducerPeak || len(window) == 0 {
		return acc
	}

	return acc / float64(len(window))
}

// Options tunes Resample.
type Options struct {
	Reducer Reducer
	// Reverse reads the signal from its last sample to its first.
	Reverse bool
}

// Resample partitions sig into width*height contiguous windows in row-major
// order and reduces each one to a value normalized by the peak amplitude of
// the whole signal. Window i covers samples [i*n/N, (i+1)*n/N); when the
// signal is shorter than the grid, empty windows take the sample at their
// start. A silent signal yields a grid of zeros.
func Resample(sig *audio.Signal, width, height int, opts Options) (*ControlGrid, error) {
	if sig == nil || sig.Len() == 0 {
		return nil, audio.ErrEmptySignal
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if opts.Reducer != ReducerMean && opts.Reducer != ReducerPeak {
		return nil, fmt.Errorf("%w: %v", ErrUnknownReducer, opts.Reducer)
	}

	if opts.Reverse {
		sig = sig.Reversed()
	}

	samples := sig.Samples
	n := int64(len(samples))
	cells := width * height
	values := make([]float64, cells)

	peak := float64(sig.Peak())
	if peak == 0 {
		return &ControlGrid{width: width, height: height, values: values}, nil
	}

	for i := range cells {
		start := int64(i) * n / int64(cells)
		end := int64(i+1) * n / int64(cells)
		if end <= start {
			end = min(start+1, n)
		}
		values[i] = opts.Reducer.reduce(samples[start:end]) / peak
	}

	return New(width, height, values)
}

// Dimensions picks a near-square width x height whose product is exactly
// count, so that a mesh of count vertices gets one cell per vertex. Prime
// counts produce a single row.
func Dimensions(count int) (width, height int) {
	if count <= 0 {
		return 0, 0
	}

	height = 1
	for d := int(math.Sqrt(float64(count))); d > 1; d-- {
		if count%d == 0 {
			height = d
			break
		}
	}

	return count / height, height
}
