// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// WAVSpec describes a RIFF/WAVE byte stream to build for tests.
type WAVSpec struct {
	FormatTag     uint16 // 0 means PCM (1)
	Channels      int
	SampleRate    int
	BitsPerSample int
	// Data holds raw, already-encoded sample bytes.
	Data []byte
	// DeclaredDataSize overrides the data chunk size field when non-zero.
	DeclaredDataSize uint32
	// ExtraChunks are written between "fmt " and "data", keyed by 4-byte ID.
	ExtraChunks map[string][]byte
	// Pad appends the RIFF pad byte after odd-length sample data.
	Pad bool
}

// BuildWAV encodes spec into a WAV file image.
func BuildWAV(spec WAVSpec) []byte {
	formatTag := spec.FormatTag
	if formatTag == 0 {
		formatTag = 1
	}

	blockAlign := uint16(spec.Channels * spec.BitsPerSample / 8)
	byteRate := uint32(spec.SampleRate) * uint32(blockAlign)

	dataSize := uint32(len(spec.Data))
	if spec.DeclaredDataSize != 0 {
		dataSize = spec.DeclaredDataSize
	}

	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	body.WriteString("fmt ")
	_ = binary.Write(body, binary.LittleEndian, uint32(16))
	_ = binary.Write(body, binary.LittleEndian, formatTag)
	_ = binary.Write(body, binary.LittleEndian, uint16(spec.Channels))
	_ = binary.Write(body, binary.LittleEndian, uint32(spec.SampleRate))
	_ = binary.Write(body, binary.LittleEndian, byteRate)
	_ = binary.Write(body, binary.LittleEndian, blockAlign)
	_ = binary.Write(body, binary.LittleEndian, uint16(spec.BitsPerSample))

	for id, payload := range spec.ExtraChunks {
		body.WriteString(id)
		_ = binary.Write(body, binary.LittleEndian, uint32(len(payload)))
		body.Write(payload)
		if len(payload)%2 == 1 {
			body.WriteByte(0)
		}
	}

	body.WriteString("data")
	_ = binary.Write(body, binary.LittleEndian, dataSize)
	body.Write(spec.Data)
	if spec.Pad && len(spec.Data)%2 == 1 {
		body.WriteByte(0)
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	// the RIFF size follows the declared data size so a truncated file
	// still looks self-consistent at the container level
	_ = binary.Write(out, binary.LittleEndian, uint32(body.Len())-uint32(len(spec.Data))+dataSize)
	out.Write(body.Bytes())

	return out.Bytes()
}

// PCM16 encodes interleaved int16 samples as little-endian bytes.
func PCM16(samples ...int16) []byte {
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}

	return buf
}

// PCM24 encodes interleaved 24-bit samples as little-endian bytes.
func PCM24(samples ...int32) []byte {
	buf := make([]byte, 3*len(samples))
	for i, s := range samples {
		u := uint32(s)
		buf[3*i] = byte(u)
		buf[3*i+1] = byte(u >> 8)
		buf[3*i+2] = byte(u >> 16)
	}

	return buf
}

// MonoWAV16 is a shortcut for a mono 16-bit PCM file.
func MonoWAV16(sampleRate int, samples ...int16) []byte {
	return BuildWAV(WAVSpec{
		Channels:      1,
		SampleRate:    sampleRate,
		BitsPerSample: 16,
		Data:          PCM16(samples...),
	})
}
