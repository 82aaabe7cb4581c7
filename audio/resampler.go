// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/wavterrain/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// When downsampling, a one-pole low-pass runs ahead of the interpolator.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames consumed per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool

	lowPass     []float32
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		srcBuf:   make([]float32, channels),
		lowPass:  make([]float32, channels),
	}

	if ratio > 1.0 {
		r.useFilter = true
		// one-pole cutoff near the destination Nyquist
		r.filterAlpha = float32(1.0 / ratio)
		if r.filterAlpha < 0.1 {
			r.filterAlpha = 0.1
		}
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from the source into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, io.EOF
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	got := n >= r.channels
	if got {
		copy(dst, r.srcBuf[:r.channels])
		if r.useFilter {
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.lowPass[c]
				r.lowPass[c] = dst[c]
			}
		}
	}

	if err == io.EOF {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return got, fmt.Errorf("%w", err)
	}

	return got, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	n, err := r.src.ReadSamples(r.srcBuf)
	if n < r.channels {
		if err != nil && err != io.EOF {
			return fmt.Errorf("%w", err)
		}
		r.eof = true
		return io.EOF
	}
	if err == io.EOF {
		r.eof = true
	}

	// seed the filter with the first frame to avoid a warm-up ramp
	copy(r.lowPass, r.srcBuf[:r.channels])
	for i := range 2 {
		copy(r.frames[i], r.srcBuf[:r.channels])
		r.hasFrame[i] = true
	}

	for i := 2; i < 4; i++ {
		got, err := r.readFrame(r.frames[i])
		if err != nil && err != io.EOF {
			return err
		}
		r.hasFrame[i] = got
	}

	return nil
}

// advance shifts the window by one frame.
func (r *Resampler) advance() error {
	if !r.hasFrame[2] {
		return io.EOF
	}

	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	got, err := r.readFrame(r.frames[3])
	if err != nil && err != io.EOF {
		return err
	}
	r.hasFrame[3] = got

	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			return written * r.channels, io.EOF
		}
		if !r.hasFrame[2] {
			// last frame: emit it once, then stop
			if r.pos > 0 {
				return written * r.channels, io.EOF
			}
			copy(dst[written*r.channels:], r.frames[1])
			written++
			r.hasFrame[1] = false
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			y1 := r.frames[1][c]
			y2 := r.frames[2][c]
			y0, y3 := y1, y2
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}
			dst[base+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
