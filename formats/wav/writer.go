// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavterrain/utils"
)

// WritePCM writes interleaved integer samples as an uncompressed PCM WAV.
// Samples must already be in the range of bitDepth.
func WritePCM(w io.WriteSeeker, sampleRate, bitDepth, channels int, samples []int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}
	if channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrNotWavFile, channels)
	}

	enc := gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing pcm: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(s)
	}

	return WritePCM(w, sampleRate, 16, 1, ints)
}

// WriteFloat16 clamps float samples in [-1, 1] to 16-bit PCM and writes
// them as a mono WAV.
func WriteFloat16(w io.WriteSeeker, sampleRate int, samples []float32) error {
	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(utils.Float32ToInt16(s))
	}

	return WritePCM(w, sampleRate, 16, 1, ints)
}
