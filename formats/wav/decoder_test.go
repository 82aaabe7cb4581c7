// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/wavterrain/audio"
	"github.com/ik5/wavterrain/internal/audiotest"
)

func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 7) // odd size on purpose
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_ValidMono16(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 0}
	wavData := audiotest.MonoWAV16(8000, samples...)

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	got := readAll(t, src)
	dataBytes := len(samples) * 2
	if len(got) != dataBytes/2 {
		t.Fatalf("decoded %d samples, want %d", len(got), dataBytes/2)
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1, 0}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_SampleRateAndLengthFollowHeader(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 22050, 44100, 96000} {
		samples := make([]int16, rate/10)
		src, err := DecodeBytes(audiotest.MonoWAV16(rate, samples...))
		if err != nil {
			t.Fatalf("rate %d: Decode() error = %v", rate, err)
		}

		sig, err := audio.Collect(src, audio.CollectOptions{})
		if err != nil {
			t.Fatalf("rate %d: Collect() error = %v", rate, err)
		}
		if sig.SampleRate != rate {
			t.Errorf("SampleRate = %d, want %d", sig.SampleRate, rate)
		}
		if sig.Len() != len(samples) {
			t.Errorf("rate %d: length %d, want %d", rate, sig.Len(), len(samples))
		}
		if sig.BitDepth != 16 {
			t.Errorf("BitDepth = %d, want 16", sig.BitDepth)
		}
	}
}

func TestDecoder_Stereo(t *testing.T) {
	t.Parallel()

	// frames: (L=0.25, R=0.75) x 3
	wavData := audiotest.BuildWAV(audiotest.WAVSpec{
		Channels:      2,
		SampleRate:    44100,
		BitsPerSample: 16,
		Data:          audiotest.PCM16(8192, 24576, 8192, 24576, 8192, 24576),
	})

	tests := []struct {
		name   string
		policy audio.ChannelPolicy
		want   float32
	}{
		{name: "average", policy: audio.ChannelAverage, want: 0.5},
		{name: "first channel", policy: audio.ChannelFirst, want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := DecodeBytes(wavData)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.Channels() != 2 {
				t.Fatalf("Channels() = %d, want 2", src.Channels())
			}

			sig, err := audio.Collect(src, audio.CollectOptions{Policy: tt.policy})
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			if sig.Len() != 3 {
				t.Fatalf("Len() = %d, want 3 frames", sig.Len())
			}
			if sig.Channels != 2 {
				t.Errorf("Channels = %d, want 2", sig.Channels)
			}
			for i, v := range sig.Samples {
				if math.Abs(float64(v-tt.want)) > 1e-6 {
					t.Errorf("sample[%d] = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		data []byte
		want []float32
	}{
		{
			name: "8-bit unsigned",
			bits: 8,
			data: []byte{128, 0, 192},
			want: []float32{0, -1, 0.5},
		},
		{
			name: "24-bit signed",
			bits: 24,
			data: audiotest.PCM24(0, 4194304, -8388608),
			want: []float32{0, 0.5, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wavData := audiotest.BuildWAV(audiotest.WAVSpec{
				Channels:      1,
				SampleRate:    8000,
				BitsPerSample: tt.bits,
				Data:          tt.data,
			})

			src, err := DecodeBytes(wavData)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			got := readAll(t, src)
			if len(got) != len(tt.want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("sample[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_OddDataChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		data []byte
		pad  bool
		want []float32
		peak float32
	}{
		{
			name: "8-bit padded",
			bits: 8,
			data: []byte{128, 160, 128},
			pad:  true,
			want: []float32{0, 0.25, 0},
			peak: 0.25,
		},
		{
			name: "8-bit without pad byte",
			bits: 8,
			data: []byte{128, 160, 128},
			want: []float32{0, 0.25, 0},
			peak: 0.25,
		},
		{
			name: "24-bit padded",
			bits: 24,
			data: audiotest.PCM24(4194304, 0, -4194304),
			pad:  true,
			want: []float32{0.5, 0, -0.5},
			peak: 0.5,
		},
		{
			name: "24-bit without pad byte",
			bits: 24,
			data: audiotest.PCM24(4194304, 0, -4194304),
			want: []float32{0.5, 0, -0.5},
			peak: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wavData := audiotest.BuildWAV(audiotest.WAVSpec{
				Channels:      1,
				SampleRate:    8000,
				BitsPerSample: tt.bits,
				Data:          tt.data,
				Pad:           tt.pad,
			})

			src, err := DecodeBytes(wavData)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if h := src.(*pcmSource).Header(); h.DataSize != len(tt.data) {
				t.Errorf("DataSize = %d, want %d", h.DataSize, len(tt.data))
			}

			sig, err := audio.Collect(src, audio.CollectOptions{})
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			if sig.Len() != len(tt.data)*8/tt.bits {
				t.Fatalf("Len() = %d, want %d", sig.Len(), len(tt.data)*8/tt.bits)
			}
			for i := range tt.want {
				if math.Abs(float64(sig.Samples[i]-tt.want[i])) > 1e-6 {
					t.Errorf("sample[%d] = %v, want %v", i, sig.Samples[i], tt.want[i])
				}
			}
			// the pad byte must not become the peak
			if peak := sig.Peak(); math.Abs(float64(peak-tt.peak)) > 1e-6 {
				t.Errorf("Peak() = %v, want %v", peak, tt.peak)
			}
		})
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("NOT A WAV FILE DATA AT ALL, JUST TEXT")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
	if !errors.Is(err, audio.ErrFormat) {
		t.Errorf("Decode() error = %v, want it to wrap audio.ErrFormat", err)
	}
}

func TestDecoder_TruncatedHeader(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF\x00")))
	if !errors.Is(err, audio.ErrFormat) {
		t.Errorf("Decode() error = %v, want audio.ErrFormat", err)
	}
}

func TestDecoder_CompressedFormatRejected(t *testing.T) {
	t.Parallel()

	for _, tag := range []uint16{0x0002, 0x0003, 0x0006, 0x0055} {
		wavData := audiotest.BuildWAV(audiotest.WAVSpec{
			FormatTag:     tag,
			Channels:      1,
			SampleRate:    8000,
			BitsPerSample: 16,
			Data:          audiotest.PCM16(1, 2, 3, 4),
		})

		_, err := DecodeBytes(wavData)
		if !errors.Is(err, ErrUnsupportedEncoding) {
			t.Errorf("tag 0x%04x: error = %v, want ErrUnsupportedEncoding", tag, err)
		}
		if !errors.Is(err, audio.ErrFormat) {
			t.Errorf("tag 0x%04x: error = %v, want audio.ErrFormat", tag, err)
		}
	}
}

func TestDecoder_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	wavData := audiotest.BuildWAV(audiotest.WAVSpec{
		Channels:      1,
		SampleRate:    8000,
		BitsPerSample: 12,
		Data:          []byte{0, 0, 0, 0},
	})

	_, err := DecodeBytes(wavData)
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestDecoder_TruncatedDataChunk(t *testing.T) {
	t.Parallel()

	wavData := audiotest.BuildWAV(audiotest.WAVSpec{
		Channels:         1,
		SampleRate:       44100,
		BitsPerSample:    16,
		Data:             audiotest.PCM16(1, 2, 3, 4, 5), // 10 bytes
		DeclaredDataSize: 1000,
	})

	src, err := DecodeBytes(wavData)
	if !errors.Is(err, audio.ErrTruncatedFile) {
		t.Fatalf("Decode() error = %v, want audio.ErrTruncatedFile", err)
	}
	if src != nil {
		t.Error("Decode() returned a partial source for a truncated file")
	}
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	wavData := audiotest.BuildWAV(audiotest.WAVSpec{
		Channels:      1,
		SampleRate:    16000,
		BitsPerSample: 16,
		Data:          audiotest.PCM16(100, 200, 300),
		ExtraChunks:   map[string][]byte{"junk": []byte("abc")},
	})

	src, err := DecodeBytes(wavData)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := readAll(t, src); len(got) != 3 {
		t.Errorf("decoded %d samples, want 3", len(got))
	}
}

func TestDecoder_EmptyDataChunk(t *testing.T) {
	t.Parallel()

	src, err := DecodeBytes(audiotest.MonoWAV16(8000))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	_, err = audio.Collect(src, audio.CollectOptions{})
	if !errors.Is(err, audio.ErrEmptySignal) {
		t.Errorf("Collect() error = %v, want audio.ErrEmptySignal", err)
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roundtrip.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	samples := []int16{0, 1000, -1000, 32767, -32768}
	if err := WriteWAV16(f, 22050, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	src, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}

	got := readAll(t, src)
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768; got[i] != want {
			t.Errorf("sample[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestWritePCM_RejectsBadDepth(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := WritePCM(f, 8000, 12, 1, []int{1, 2}); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("WritePCM() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestExtensibleSubFormat(t *testing.T) {
	t.Parallel()

	build := func(sub uint16) []byte {
		b := new(bytes.Buffer)
		b.WriteString("RIFF")
		_ = binary.Write(b, binary.LittleEndian, uint32(60))
		b.WriteString("WAVE")
		b.WriteString("fmt ")
		_ = binary.Write(b, binary.LittleEndian, uint32(40))
		fmtBody := make([]byte, 40)
		binary.LittleEndian.PutUint16(fmtBody[0:], formatExtensible)
		binary.LittleEndian.PutUint16(fmtBody[24:], sub)
		b.Write(fmtBody)
		return b.Bytes()
	}

	if sub, ok := extensibleSubFormat(build(formatPCM)); !ok || sub != formatPCM {
		t.Errorf("extensibleSubFormat() = %#x, %v; want PCM", sub, ok)
	}
	if sub, ok := extensibleSubFormat(build(0x0003)); !ok || sub != 0x0003 {
		t.Errorf("extensibleSubFormat() = %#x, %v; want float", sub, ok)
	}
	if _, ok := extensibleSubFormat([]byte("RIFF")); ok {
		t.Error("extensibleSubFormat() ok for a truncated file")
	}
}
