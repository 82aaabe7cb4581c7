// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks used before any
// terrain work happens.
//
//   - Source is a stream of interleaved float32 samples
//   - Decoder turns an io.Reader into a Source
//   - Registry maps file extensions to decoders
//   - MonoMixer collapses channels (average or first channel)
//   - Resampler changes the sample rate with cubic interpolation
//   - Collect drains a Source into an immutable mono Signal
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0] where 0.0 is silence. Decoders normalize
// integer PCM by its bit depth so later stages never see the source encoding.
//
// # Collecting a Signal
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	sig, err := audio.Collect(src, audio.CollectOptions{Policy: audio.ChannelAverage})
//
// Collect fails with ErrEmptySignal when the source yields nothing. Setting
// CollectOptions.AnalysisRate decimates long recordings before they are
// reduced into a control grid.
//
// # Errors
//
// ReadSamples returns io.EOF once the stream is drained, possibly together
// with the last samples. Format problems wrap ErrFormat and short files wrap
// ErrTruncatedFile so callers can test with errors.Is regardless of the
// container.
package audio
