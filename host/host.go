// SPDX-License-Identifier: EPL-2.0

// Package host describes what the terrain generator needs from the 3D
// application that owns the mesh, and ships an in-memory plane that
// satisfies it.
package host

import (
	"errors"
	"image"
	"math"
)

// ErrNoSelection is returned when no mesh is selected in the host.
var ErrNoSelection = errors.New("no mesh selected")

// Vec3 is a position or direction in host space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3         { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Scale(s float64) Vec3    { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64         { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Dot(o Vec3) float64      { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Sub(o Vec3) Vec3         { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) IsFinite() bool          { return finite(v.X) && finite(v.Y) && finite(v.Z) }
func (v Vec3) ApproxEqual(o Vec3) bool { return v.Sub(o).Length() < 1e-9 }

// Normalize returns v scaled to unit length, or the zero vector when v has
// no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 || !finite(l) {
		return Vec3{}
	}

	return v.Scale(1 / l)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Vec2 is a parametric (u, v) coordinate.
type Vec2 struct {
	U, V float64
}

// Vertex is a snapshot of one selected vertex. Index identifies it in calls
// back to the host.
type Vertex struct {
	Index    int
	Position Vec3
	Normal   Vec3
	UV       Vec2
}

// Adapter is the contract with the host application. The generator only
// reads the selection, moves existing vertices and hands over a texture; it
// never creates or deletes geometry.
type Adapter interface {
	// SelectedMeshVertices returns the vertices of the selected mesh, or
	// ErrNoSelection.
	SelectedMeshVertices() ([]Vertex, error)
	SetVertexPosition(index int, pos Vec3) error
	AssignTexture(img image.Image) error
}

// GridSizer is implemented by adapters whose selection is a regular lattice
// of vertices. GridSize returns the vertex count along U and along V.
type GridSizer interface {
	GridSize() (columns, rows int)
}

// UVGridSize counts the distinct U and V coordinates of vertices. ok is true
// only when they form a full lattice, one vertex per (U, V) pair.
func UVGridSize(vertices []Vertex) (columns, rows int, ok bool) {
	us := make(map[float64]struct{})
	vs := make(map[float64]struct{})
	for _, v := range vertices {
		us[v.UV.U] = struct{}{}
		vs[v.UV.V] = struct{}{}
	}

	columns, rows = len(us), len(vs)
	if columns == 0 || columns*rows != len(vertices) {
		return 0, 0, false
	}

	return columns, rows, true
}
