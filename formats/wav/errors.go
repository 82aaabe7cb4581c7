// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/wavterrain/audio"
)

var (
	ErrNotWavFile          = fmt.Errorf("%w: not a WAV file", audio.ErrFormat)
	ErrUnsupportedEncoding = fmt.Errorf("%w: only uncompressed integer PCM WAV is supported", audio.ErrFormat)
	ErrUnsupportedBitDepth = fmt.Errorf("%w: unsupported PCM bit depth", audio.ErrFormat)
	ErrMissingDataChunk    = fmt.Errorf("%w: WAV data chunk not found", audio.ErrFormat)
	ErrTruncatedData       = fmt.Errorf("%w: WAV data chunk", audio.ErrTruncatedFile)
)
