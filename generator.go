// SPDX-License-Identifier: EPL-2.0

package wavterrain

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ik5/wavterrain/audio"
	"github.com/ik5/wavterrain/displace"
	"github.com/ik5/wavterrain/grid"
	"github.com/ik5/wavterrain/host"
	"github.com/ik5/wavterrain/settings"
	"github.com/ik5/wavterrain/texture"
)

// Progress is reported on every stage change and while vertices are
// written. Done and Total count vertices during StageDisplacing and are
// zero otherwise.
type Progress struct {
	Stage Stage
	Done  int
	Total int
}

type ProgressFunc func(Progress)

// Result describes a finished run.
type Result struct {
	Signal   *audio.Signal
	Grid     *grid.ControlGrid
	Vertices int
	// Texture is nil when the texture mode is off.
	Texture *image.RGBA
}

// Generator runs the decode, resample, displace and texture stages against
// a host adapter. A Generator is not safe for concurrent runs.
type Generator struct {
	registry *audio.Registry
	logger   *logrus.Logger
	progress ProgressFunc
	stage    Stage
}

type Option func(*Generator)

func WithLogger(l *logrus.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRegistry replaces DefaultRegistry as the source of decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(g *Generator) {
		if r != nil {
			g.registry = r
		}
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(g *Generator) { g.progress = fn }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		registry: DefaultRegistry(),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Stage returns where the last run stopped: StageDone, StageFailed, or
// StageIdle before any run.
func (g *Generator) Stage() Stage { return g.stage }

func (g *Generator) enter(stage Stage) {
	g.stage = stage
	g.logger.WithFields(logrus.Fields{
		"function": "Generator.enter",
		"stage":    stage.String(),
	}).Debug("Entering stage")

	if g.progress != nil {
		g.progress(Progress{Stage: stage})
	}
}

func (g *Generator) fail(stage Stage, err error) error {
	g.stage = StageFailed
	g.logger.WithFields(logrus.Fields{
		"function": "Generator.fail",
		"stage":    stage.String(),
		"error":    err.Error(),
	}).Error("Terrain generation failed")

	return &StageError{Stage: stage, Err: err}
}

// GenerateFile reads the audio file at path, picking the decoder from its
// extension, and runs Generate. The file is opened once the settings and
// selection have been checked.
func (g *Generator) GenerateFile(path string, a host.Adapter, s settings.Settings) (*Result, error) {
	open := func() (io.ReadCloser, error) { return os.Open(path) }
	return g.generate(open, filepath.Ext(path), a, s)
}

// Generate decodes r with the decoder registered for format and displaces
// the selected vertices of a. Settings, palette and selection are checked
// before anything is decoded. On failure the returned error is a
// *StageError and vertices already moved stay moved.
func (g *Generator) Generate(r io.Reader, format string, a host.Adapter, s settings.Settings) (*Result, error) {
	open := func() (io.ReadCloser, error) { return io.NopCloser(r), nil }
	return g.generate(open, format, a, s)
}

func (g *Generator) generate(open func() (io.ReadCloser, error), format string, a host.Adapter, s settings.Settings) (*Result, error) {
	g.enter(StageIdle)

	vertices, err := g.prepare(a, s)
	if err != nil {
		return nil, g.fail(StageIdle, err)
	}

	g.enter(StageDecoding)
	rc, err := open()
	if err != nil {
		return nil, g.fail(StageDecoding, err)
	}
	defer rc.Close()

	sig, err := g.decode(rc, format, s)
	if err != nil {
		return nil, g.fail(StageDecoding, err)
	}

	return g.run(sig, vertices, a, s)
}

// GenerateSignal skips decoding and drives the run from an already
// collected signal.
func (g *Generator) GenerateSignal(sig *audio.Signal, a host.Adapter, s settings.Settings) (*Result, error) {
	g.enter(StageIdle)

	vertices, err := g.prepare(a, s)
	if err != nil {
		return nil, g.fail(StageIdle, err)
	}

	return g.run(sig, vertices, a, s)
}

func (g *Generator) prepare(a host.Adapter, s settings.Settings) ([]host.Vertex, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.TextureMode != settings.TextureOff {
		if _, err := texture.NewPalette(s.Palette); err != nil {
			return nil, err
		}
	}
	if a == nil {
		return nil, host.ErrNoSelection
	}

	vertices, err := a.SelectedMeshVertices()
	if err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, host.ErrNoSelection
	}

	return vertices, nil
}

func (g *Generator) decode(r io.Reader, format string, s settings.Settings) (*audio.Signal, error) {
	dec, ok := g.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", audio.ErrFormat, audio.ErrUnknownFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	sig, err := audio.Collect(src, audio.CollectOptions{
		Policy:       s.ChannelPolicy,
		AnalysisRate: s.AnalysisRate,
	})
	if err != nil {
		return nil, err
	}

	g.logger.WithFields(logrus.Fields{
		"function":    "Generator.decode",
		"format":      format,
		"sample_rate": sig.SampleRate,
		"channels":    sig.Channels,
		"bit_depth":   sig.BitDepth,
		"samples":     sig.Len(),
		"duration":    sig.Duration().String(),
	}).Debug("Audio decoded")

	return sig, nil
}

func (g *Generator) run(sig *audio.Signal, vertices []host.Vertex, a host.Adapter, s settings.Settings) (*Result, error) {
	g.enter(StageResampling)

	w, h := s.GridWidth, s.GridHeight
	if w == 0 || h == 0 {
		w, h = gridSize(a, vertices)
	}

	cg, err := grid.Resample(sig, w, h, grid.Options{Reducer: s.Reducer, Reverse: s.Reverse})
	if err != nil {
		return nil, g.fail(StageResampling, err)
	}

	g.logger.WithFields(logrus.Fields{
		"function": "Generator.run",
		"width":    w,
		"height":   h,
		"reducer":  s.Reducer.String(),
		"max":      cg.Max(),
	}).Debug("Control grid built")

	g.enter(StageDisplacing)
	n, err := displace.Apply(a, vertices, cg, s, func(done, total int) {
		if g.progress != nil {
			g.progress(Progress{Stage: StageDisplacing, Done: done, Total: total})
		}
	})
	if err != nil {
		return nil, g.fail(StageDisplacing, err)
	}

	res := &Result{Signal: sig, Grid: cg, Vertices: n}

	if s.TextureMode != settings.TextureOff {
		g.enter(StageTexturing)

		img, err := texture.Synthesize(cg, s)
		if err != nil {
			return nil, g.fail(StageTexturing, err)
		}
		if err := a.AssignTexture(img); err != nil {
			return nil, g.fail(StageTexturing, err)
		}
		res.Texture = img
	}

	g.enter(StageDone)
	g.logger.WithFields(logrus.Fields{
		"function": "Generator.run",
		"vertices": n,
		"axis":     s.Axis.String(),
		"curve":    s.Curve.String(),
		"texture":  s.TextureMode.String(),
	}).Info("Terrain generated")

	return res, nil
}

// gridSize matches the control grid to the vertex lattice of the mesh:
// the adapter's own size, else the lattice formed by the vertex UVs, else a
// near-square factorisation of the vertex count.
func gridSize(a host.Adapter, vertices []host.Vertex) (int, int) {
	if gs, ok := a.(host.GridSizer); ok {
		if w, h := gs.GridSize(); w > 0 && h > 0 && w*h == len(vertices) {
			return w, h
		}
	}
	if w, h, ok := host.UVGridSize(vertices); ok {
		return w, h
	}

	return grid.Dimensions(len(vertices))
}

// Generate runs a single generation with a default Generator.
func Generate(r io.Reader, format string, a host.Adapter, s settings.Settings) (*Result, error) {
	return New().Generate(r, format, a, s)
}

// GenerateFile runs a single generation from a file with a default
// Generator.
func GenerateFile(path string, a host.Adapter, s settings.Settings) (*Result, error) {
	return New().GenerateFile(path, a, s)
}
