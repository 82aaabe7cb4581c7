// SPDX-License-Identifier: EPL-2.0

// Package wavterrain turns a sound file into terrain: it decodes the audio,
// reduces its amplitude envelope to a control grid, pushes the vertices of a
// host mesh along an axis by that grid and can paint a matching texture.
//
// # Stages
//
// A run moves through Idle, Decoding, Resampling, Displacing, an optional
// Texturing stage and ends in Done. Any error ends the run in Failed and is
// returned as a *StageError naming the stage:
//
//	_, err := wavterrain.GenerateFile("song.wav", mesh, settings.Default())
//	var se *wavterrain.StageError
//	if errors.As(err, &se) {
//	    log.Printf("failed while %s: %v", se.Stage, se.Err)
//	}
//
// Vertices already moved when a later stage fails are not restored; callers
// needing atomicity snapshot the mesh first.
//
// # Host
//
// The mesh lives in the host application and is reached only through
// host.Adapter. host.PlaneMesh is an in-memory plane useful for tests and
// for exporting OBJ files.
//
// # Packages
//
//   - audio: sources, channel mixing, rate conversion, Signal
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders
//   - grid: ControlGrid and the signal resampler
//   - displace: response curves and per-vertex updates
//   - texture: palette gradients, noise blending, height maps
//   - settings: generation options and settings files
//
// Everything runs on the calling goroutine. The same input, mesh and settings
// always give the same vertex positions and texture.
package wavterrain
