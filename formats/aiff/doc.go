// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes PCM AIFF files through github.com/go-audio/aiff.
//
// AIFF is accepted as an alternative input container to WAV. Only 16, 24 and
// 32-bit PCM is supported; every rejection wraps audio.ErrFormat.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	sig, err := audio.Collect(src, audio.CollectOptions{})
package aiff
