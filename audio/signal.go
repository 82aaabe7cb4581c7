// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Signal is a fully decoded mono amplitude sequence. Samples are in [-1, 1].
// A Signal is not modified after Collect returns it.
type Signal struct {
	Samples    []float32
	SampleRate int
	// Channels and BitDepth describe the source before it was mixed down.
	Channels int
	BitDepth int
}

// Len returns the number of samples.
func (s *Signal) Len() int { return len(s.Samples) }

// Duration is the playing time of the signal.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Peak returns the largest absolute sample value.
func (s *Signal) Peak() float32 {
	var peak float32
	for _, v := range s.Samples {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	return peak
}

// Reversed returns a copy of the signal with the sample order reversed.
func (s *Signal) Reversed() *Signal {
	out := *s
	out.Samples = make([]float32, len(s.Samples))
	for i, v := range s.Samples {
		out.Samples[len(s.Samples)-1-i] = v
	}

	return &out
}

// CollectOptions tunes how Collect builds a Signal.
type CollectOptions struct {
	Policy ChannelPolicy
	// AnalysisRate, when positive and lower than the source rate, resamples
	// the mixed signal before collecting it.
	AnalysisRate int
	BufferSize   int
}

// Collect drains src into a mono Signal, mixing channels according to
// opts.Policy. It fails with ErrEmptySignal when src yields no samples.
// src is not closed.
func Collect(src Source, opts CollectOptions) (*Signal, error) {
	bufSize := opts.BufferSize
	if bufSize <= 0 {
		bufSize = 4096
	}

	sig := &Signal{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}
	if bd, ok := src.(BitDepther); ok {
		sig.BitDepth = bd.BitDepth()
	}

	var stream Source = NewMonoMixerWithPolicy(src, opts.Policy)
	if opts.AnalysisRate > 0 && opts.AnalysisRate < src.SampleRate() {
		stream = NewResampler(stream, opts.AnalysisRate)
		sig.SampleRate = opts.AnalysisRate
	}

	buf := make([]float32, bufSize)
	for {
		n, err := stream.ReadSamples(buf)
		for i := range n {
			v := buf[i]
			if math.IsNaN(float64(v)) {
				v = 0
			}
			sig.Samples = append(sig.Samples, min(max(v, -1), 1))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("collecting samples: %w", err)
		}
		if n == 0 {
			// some decoders report (0, nil) once drained
			break
		}
	}

	if len(sig.Samples) == 0 {
		return nil, ErrEmptySignal
	}

	return sig, nil
}
