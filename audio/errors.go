// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrFormat marks input that is not a supported uncompressed PCM container.
	// Format packages wrap it with more specific errors.
	ErrFormat = errors.New("unsupported or corrupt audio format")

	// ErrTruncatedFile marks a data chunk shorter than its header declares.
	ErrTruncatedFile = errors.New("audio data shorter than declared")

	// ErrEmptySignal marks audio that contains no samples.
	ErrEmptySignal = errors.New("audio signal is empty")

	ErrUnknownFormat = errors.New("no decoder registered for format")
)
