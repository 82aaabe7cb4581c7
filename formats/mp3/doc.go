// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 input through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always yields stereo 16-bit PCM, so the source reports two channels
// and a 16-bit depth whatever the original stream held. Mixing down to the
// mono terrain signal is left to audio.Collect.
package mp3
