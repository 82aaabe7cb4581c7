// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/wavterrain/audio"
	"github.com/jfreymuth/oggvorbis"
)

// ErrNotVorbisFile wraps decoder failures at open time.
var ErrNotVorbisFile = fmt.Errorf("%w: not an Ogg Vorbis stream", audio.ErrFormat)

// oggReader is the part of oggvorbis.Reader the source needs; tests swap it.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples reads whole frames only; dst is trimmed to a multiple of the
// channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	usable := len(dst) - len(dst)%s.channels
	if usable == 0 {
		return 0, nil
	}

	// oggvorbis.Reader.Read returns the number of float values written
	n, err := s.dec.Read(dst[:usable])
	if n == 0 && err == nil {
		return 0, nil
	}

	return n, err
}

// Decoder reads Ogg Vorbis streams through github.com/jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	if dec.Channels() < 1 {
		return nil, ErrNotVorbisFile
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
