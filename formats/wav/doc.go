// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes uncompressed PCM WAV files.
//
// Container parsing and sample decoding use github.com/go-audio/wav. The
// decoder reads the whole input into memory, validates the format, and
// refuses anything that is not integer PCM:
//
//   - format tag 1 (PCM), or WAVE_FORMAT_EXTENSIBLE with a PCM sub-format
//   - 8 (unsigned), 16, 24 or 32 bits per sample
//   - any channel count and sample rate
//
// Samples are served through audio.Source as float32 values in [-1, 1].
//
// # Errors
//
// Every rejection wraps audio.ErrFormat or audio.ErrTruncatedFile, so callers
// can branch on the error kind without knowing the container:
//
//	src, err := wav.Decoder{}.Decode(file)
//	switch {
//	case errors.Is(err, audio.ErrTruncatedFile):
//	    // data chunk shorter than declared; nothing was decoded
//	case errors.Is(err, audio.ErrFormat):
//	    // not a PCM WAV
//	}
//
// # Writing
//
// WritePCM, WriteWAV16 and WriteFloat16 write PCM WAV files through the
// go-audio encoder. The destination must be an io.WriteSeeker because the
// header sizes are patched on Close.
package wav
