// SPDX-License-Identifier: EPL-2.0

package host

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"slices"
)

var (
	ErrVertexOutOfRange = errors.New("vertex index out of range")
	ErrInvalidPosition  = errors.New("vertex position is not finite")
	ErrNilTexture       = errors.New("texture image is nil")
)

// PlaneMesh is an in-memory Adapter holding a flat, subdivided plane in the
// XZ plane, centred on the origin with +Y normals. It starts selected.
type PlaneMesh struct {
	divX, divZ int
	vertices   []Vertex
	selected   bool
	texture    image.Image
}

// NewPlaneMesh builds a width x depth plane with divX by divZ quads, giving
// (divX+1)*(divZ+1) vertices. Divisions below 1 are raised to 1.
func NewPlaneMesh(width, depth float64, divX, divZ int) *PlaneMesh {
	divX, divZ = max(divX, 1), max(divZ, 1)

	m := &PlaneMesh{
		divX:     divX,
		divZ:     divZ,
		vertices: make([]Vertex, 0, (divX+1)*(divZ+1)),
		selected: true,
	}

	for j := 0; j <= divZ; j++ {
		v := float64(j) / float64(divZ)
		for i := 0; i <= divX; i++ {
			u := float64(i) / float64(divX)
			m.vertices = append(m.vertices, Vertex{
				Index:    len(m.vertices),
				Position: Vec3{X: (u - 0.5) * width, Z: (v - 0.5) * depth},
				Normal:   Vec3{Y: 1},
				UV:       Vec2{U: u, V: v},
			})
		}
	}

	return m
}

func (m *PlaneMesh) Select()              { m.selected = true }
func (m *PlaneMesh) Deselect()            { m.selected = false }
func (m *PlaneMesh) Texture() image.Image { return m.texture }
func (m *PlaneMesh) Len() int             { return len(m.vertices) }

// GridSize returns the vertex columns along X and rows along Z.
func (m *PlaneMesh) GridSize() (int, int) { return m.divX + 1, m.divZ + 1 }

// Vertices returns a copy of every vertex regardless of the selection.
func (m *PlaneMesh) Vertices() []Vertex {
	return slices.Clone(m.vertices)
}

func (m *PlaneMesh) SelectedMeshVertices() ([]Vertex, error) {
	if !m.selected || len(m.vertices) == 0 {
		return nil, ErrNoSelection
	}

	return slices.Clone(m.vertices), nil
}

func (m *PlaneMesh) SetVertexPosition(index int, pos Vec3) error {
	if index < 0 || index >= len(m.vertices) {
		return fmt.Errorf("%w: %d", ErrVertexOutOfRange, index)
	}
	if !pos.IsFinite() {
		return fmt.Errorf("%w: %+v", ErrInvalidPosition, pos)
	}

	m.vertices[index].Position = pos
	return nil
}

func (m *PlaneMesh) AssignTexture(img image.Image) error {
	if img == nil {
		return ErrNilTexture
	}

	m.texture = img
	return nil
}

// WriteOBJ writes the mesh as a Wavefront OBJ document with positions,
// texture coordinates, normals and quad faces.
func (m *PlaneMesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# wavterrain plane %dx%d\n", m.divX, m.divZ)
	for _, v := range m.vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position.X, v.Position.Y, v.Position.Z)
	}
	for _, v := range m.vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.UV.U, v.UV.V)
	}
	for _, v := range m.vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal.X, v.Normal.Y, v.Normal.Z)
	}

	row := m.divX + 1
	for j := range m.divZ {
		for i := range m.divX {
			// OBJ indices are 1-based; counter-clockwise seen from +Y
			a := j*row + i + 1
			b := a + 1
			c := a + row + 1
			d := a + row
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d %d/%d/%d\n",
				a, a, a, d, d, d, c, c, c, b, b, b)
		}
	}

	return bw.Flush()
}
