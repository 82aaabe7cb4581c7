// SPDX-License-Identifier: EPL-2.0

// Package displace moves mesh vertices according to a control grid.
package displace

import (
	"errors"
	"fmt"
	"iter"

	"github.com/ik5/wavterrain/grid"
	"github.com/ik5/wavterrain/host"
	"github.com/ik5/wavterrain/settings"
	"github.com/ik5/wavterrain/utils"
)

var ErrNilGrid = errors.New("control grid is nil")

// Update is the new position of one vertex.
type Update struct {
	Index    int       // host vertex index
	Position host.Vec3 // displaced position
	Value    float64   // grid sample before shaping
	Offset   float64   // signed distance moved along the axis
}

// ProgressFunc receives the number of vertices written so far.
type ProgressFunc func(done, total int)

// direction returns the unit vector a vertex moves along. A vertex without a
// usable normal moves along +Y.
func direction(v host.Vertex, axis settings.Axis) host.Vec3 {
	switch axis {
	case settings.AxisX:
		return host.Vec3{X: 1}
	case settings.AxisZ:
		return host.Vec3{Z: 1}
	case settings.AxisNormal:
		if n := v.Normal.Normalize(); n != (host.Vec3{}) {
			return n
		}
	}

	return host.Vec3{Y: 1}
}

// Displace computes the update for a single vertex. UV coordinates outside
// [0, 1] are clamped.
func Displace(v host.Vertex, g *grid.ControlGrid, s settings.Settings) Update {
	val := g.SampleWith(s.Interpolation, utils.Clamp01(v.UV.U), utils.Clamp01(v.UV.V))
	off := Offset(val, s)

	return Update{
		Index:    v.Index,
		Position: v.Position.Add(direction(v, s.Axis).Scale(off)),
		Value:    val,
		Offset:   off,
	}
}

// Updates lazily yields one Update per vertex, in order, keyed by the
// position in vertices. Each range over the sequence starts again from the
// first vertex; nothing is written to the host.
func Updates(vertices []host.Vertex, g *grid.ControlGrid, s settings.Settings) iter.Seq2[int, Update] {
	return func(yield func(int, Update) bool) {
		if g == nil {
			return
		}
		for i, v := range vertices {
			if !yield(i, Displace(v, g, s)) {
				return
			}
		}
	}
}

// Apply writes every update to the adapter and reports progress roughly
// every percent. It stops at the first adapter error and returns how many
// vertices were written; earlier writes are not undone.
func Apply(a host.Adapter, vertices []host.Vertex, g *grid.ControlGrid, s settings.Settings, progress ProgressFunc) (int, error) {
	if g == nil {
		return 0, ErrNilGrid
	}

	total := len(vertices)
	step := max(total/100, 1)

	done := 0
	for _, u := range Updates(vertices, g, s) {
		if err := a.SetVertexPosition(u.Index, u.Position); err != nil {
			return done, fmt.Errorf("vertex %d: %w", u.Index, err)
		}
		done++

		if progress != nil && (done%step == 0 || done == total) {
			progress(done, total)
		}
	}

	return done, nil
}
