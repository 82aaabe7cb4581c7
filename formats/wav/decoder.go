// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavterrain/audio"
	"github.com/ik5/wavterrain/utils"
)

const (
	formatPCM        = 0x0001
	formatExtensible = 0xFFFE
)

// Header is the subset of the fmt chunk the decoder cares about.
type Header struct {
	FormatTag     uint16
	Channels      int
	SampleRate    int
	BitsPerSample int
	// DataSize is the data chunk length the file declares, in bytes.
	DataSize int
}

// BytesPerSample is the storage width of a single channel sample.
func (h Header) BytesPerSample() int { return (h.BitsPerSample + 7) / 8 }

// pcmSource serves an already decoded PCM buffer as an audio.Source.
type pcmSource struct {
	header Header
	data   []int
	pos    int
}

func (s *pcmSource) SampleRate() int { return s.header.SampleRate }
func (s *pcmSource) Channels() int   { return s.header.Channels }
func (s *pcmSource) BitDepth() int   { return s.header.BitsPerSample }
func (s *pcmSource) BufSize() int    { return 4096 }
func (s *pcmSource) Close() error    { return nil }

// Header returns the parsed header of the decoded file.
func (s *pcmSource) Header() Header { return s.header }

func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := min(len(dst), len(s.data)-s.pos)
	for i := range n {
		dst[i] = utils.IntToFloat32(s.data[s.pos+i], s.header.BitsPerSample)
	}
	s.pos += n

	if s.pos >= len(s.data) {
		return n, io.EOF
	}

	return n, nil
}

// Decoder reads uncompressed PCM WAV files of 8, 16, 24 or 32 bits.
// The whole input is read into memory before parsing.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	return DecodeBytes(data)
}

// DecodeBytes parses a complete WAV file image. A data chunk shorter than its
// declared size is reported as ErrTruncatedData and no source is returned.
// The pad byte after an odd-sized data chunk is optional and never decoded.
func DecodeBytes(data []byte) (audio.Source, error) {
	dec := gowav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	header := Header{
		FormatTag:     dec.WavAudioFormat,
		Channels:      int(dec.NumChans),
		SampleRate:    int(dec.SampleRate),
		BitsPerSample: int(dec.BitDepth),
	}

	switch header.FormatTag {
	case formatPCM:
	case formatExtensible:
		if sub, ok := extensibleSubFormat(data); !ok || sub != formatPCM {
			return nil, ErrUnsupportedEncoding
		}
	default:
		return nil, fmt.Errorf("%w (format tag 0x%04x)", ErrUnsupportedEncoding, header.FormatTag)
	}

	switch header.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, header.BitsPerSample)
	}

	if header.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrNotWavFile, header.SampleRate)
	}
	if header.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotWavFile, header.Channels)
	}

	body, declared, ok := findChunk(data, "data")
	if !ok {
		return nil, ErrMissingDataChunk
	}
	header.DataSize = declared

	// the chunk reader rounds odd sizes up to the RIFF pad byte, so the
	// declared size and the bytes actually present are taken from the file
	found := min(max(len(data)-body, 0), declared)
	bps := header.BytesPerSample()
	if declared-found >= bps {
		return nil, fmt.Errorf("%w: declared %d bytes, found %d", ErrTruncatedData, declared, found)
	}

	buf, err := dec.FullPCMBuffer()
	if !dec.WasPCMAccessed() {
		return nil, ErrMissingDataChunk
	}
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %w", audio.ErrFormat, err)
	}

	var pcm []int
	if buf != nil {
		pcm = buf.Data
	}
	want := found / bps
	if len(pcm) < want {
		return nil, fmt.Errorf("%w: declared %d bytes, decoded %d", ErrTruncatedData, declared, len(pcm)*bps)
	}

	// drop the pad byte sample and a trailing partial frame
	want -= want % header.Channels

	return &pcmSource{header: header, data: pcm[:want]}, nil
}

// findChunk walks the RIFF chunks of a WAVE file and returns the body offset
// and the declared, unpadded size of the first chunk with the given id.
func findChunk(data []byte, id string) (int, int, bool) {
	const riffHeader = 12
	if len(data) < riffHeader {
		return 0, 0, false
	}

	pos := riffHeader
	for pos+8 <= len(data) {
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if string(data[pos:pos+4]) == id {
			return body, size, true
		}
		pos = body + size + size%2
	}

	return 0, 0, false
}

// extensibleSubFormat walks the RIFF chunks looking for the fmt chunk of a
// WAVE_FORMAT_EXTENSIBLE file and returns the format code held in the first
// two bytes of its sub-format GUID.
func extensibleSubFormat(data []byte) (uint16, bool) {
	body, size, ok := findChunk(data, "fmt ")
	// 16 bytes of PCM fields, cbSize, valid bits, channel mask, GUID
	if !ok || size < 40 || body+26 > len(data) {
		return 0, false
	}

	return binary.LittleEndian.Uint16(data[body+24 : body+26]), true
}
