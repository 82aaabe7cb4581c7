// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/wavterrain/internal/audiotest"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 100, 0.5)
	mixer := NewMonoMixer(src)

	if mixer.Channels() != 1 {
		t.Errorf("MonoMixer.Channels() = %d, want 1", mixer.Channels())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_Policies(t *testing.T) {
	t.Parallel()

	waveform := func(_ int, channel int) float32 {
		return float32(channel+1) / 10 // 0.1, 0.2, 0.3 ...
	}

	tests := []struct {
		name     string
		channels int
		policy   ChannelPolicy
		want     float32
	}{
		{name: "stereo average", channels: 2, policy: ChannelAverage, want: 0.15},
		{name: "stereo first", channels: 2, policy: ChannelFirst, want: 0.1},
		{name: "quad average", channels: 4, policy: ChannelAverage, want: 0.25},
		{name: "six channel average", channels: 6, policy: ChannelAverage, want: 0.35},
		{name: "six channel first", channels: 6, policy: ChannelFirst, want: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 50, waveform)
			mixer := NewMonoMixerWithPolicy(src, tt.policy)

			if mixer.Policy() != tt.policy {
				t.Errorf("Policy() = %v, want %v", mixer.Policy(), tt.policy)
			}
			if mixer.SourceChannels() != tt.channels {
				t.Errorf("SourceChannels() = %d, want %d", mixer.SourceChannels(), tt.channels)
			}

			buf := make([]float32, 64)
			n, err := mixer.ReadSamples(buf)
			if err != io.EOF {
				t.Errorf("ReadSamples() error = %v, want io.EOF", err)
			}
			if n != 50 {
				t.Fatalf("ReadSamples() n = %d, want 50 frames", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Fatalf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	n, err := mixer.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if err := NewMonoMixer(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the wrapped source")
	}
}

func TestParseChannelPolicy(t *testing.T) {
	t.Parallel()

	tests := map[string]ChannelPolicy{
		"":        ChannelAverage,
		"average": ChannelAverage,
		"Mean":    ChannelAverage,
		"first":   ChannelFirst,
		" LEFT ":  ChannelFirst,
	}
	for in, want := range tests {
		got, err := ParseChannelPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseChannelPolicy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseChannelPolicy("loudest"); err == nil {
		t.Error("ParseChannelPolicy() accepted an unknown policy")
	}
	if got := ChannelFirst.String(); got != "first" {
		t.Errorf("ChannelFirst.String() = %q", got)
	}
}
