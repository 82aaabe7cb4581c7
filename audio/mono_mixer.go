// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
)

// ChannelPolicy selects how a multi-channel frame collapses to one sample.
type ChannelPolicy int

const (
	// ChannelAverage averages every channel of a frame.
	ChannelAverage ChannelPolicy = iota
	// ChannelFirst keeps only the first channel and drops the rest.
	ChannelFirst
)

func (p ChannelPolicy) String() string {
	switch p {
	case ChannelAverage:
		return "average"
	case ChannelFirst:
		return "first"
	default:
		return fmt.Sprintf("ChannelPolicy(%d)", int(p))
	}
}

// ParseChannelPolicy accepts "average" or "first" (case-insensitive).
func ParseChannelPolicy(s string) (ChannelPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average", "avg", "mean":
		return ChannelAverage, nil
	case "first", "left":
		return ChannelFirst, nil
	}

	return ChannelAverage, fmt.Errorf("unknown channel policy %q", s)
}

type MonoMixer struct {
	src    Source
	policy ChannelPolicy
	tmp    []float32
}

// NewMonoMixer averages all channels of src into a single channel.
func NewMonoMixer(src Source) *MonoMixer {
	return NewMonoMixerWithPolicy(src, ChannelAverage)
}

func NewMonoMixerWithPolicy(src Source, policy ChannelPolicy) *MonoMixer {
	return &MonoMixer{
		src:    src,
		policy: policy,
		tmp:    make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int       { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int         { return 1 }
func (m *MonoMixer) BufSize() int          { return m.src.BufSize() }
func (m *MonoMixer) Policy() ChannelPolicy { return m.policy }
func (m *MonoMixer) SourceChannels() int   { return m.src.Channels() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.src.Channels() == 1 {
		// Pass-through: read mono directly
		return m.src.ReadSamples(dst)
	}

	channels := m.src.Channels()
	samplesNeeded := len(dst) * channels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		newCap := max(samplesNeeded, 8192)
		m.tmp = make([]float32, newCap)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	if m.policy == ChannelFirst {
		for f := range frames {
			dst[f] = m.tmp[f*channels]
		}

		return frames, err
	}

	invChannels := float32(1.0) / float32(channels)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += m.tmp[baseIdx+c]
			}
			dst[f] = sum * invChannels
		}
	}

	return frames, err
}
