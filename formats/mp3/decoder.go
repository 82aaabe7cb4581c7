// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/wavterrain/audio"
)

// ErrNotMP3File wraps decoder failures at open time.
var ErrNotMP3File = fmt.Errorf("%w: not an MP3 stream", audio.ErrFormat)

// mp3Reader is the part of gomp3.Decoder the source needs; tests swap it.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// carry holds an odd trailing byte between reads
	carry    byte
	hasCarry bool
}

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const channels = 2

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) BitDepth() int   { return 16 }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	offset := 0
	if s.hasCarry && bytesNeeded > 0 {
		s.buf[0] = s.carry
		s.hasCarry = false
		offset = 1
	}

	n, err := s.dec.Read(s.buf[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	samples := n / 2
	for i := range samples {
		val := int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
		dst[i] = float32(val) / 32768.0
	}
	if n%2 == 1 {
		s.carry = s.buf[n-1]
		s.hasCarry = true
	}

	return samples, err
}

// Decoder reads MPEG-1 Layer 3 streams through github.com/hajimehoshi/go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
