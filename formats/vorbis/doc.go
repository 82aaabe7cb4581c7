// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis input through github.com/jfreymuth/oggvorbis.
//
// Vorbis is lossy and has no bit depth; samples arrive as float32 already in
// [-1, 1] and are passed through untouched.
package vorbis
