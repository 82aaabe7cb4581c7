// SPDX-License-Identifier: EPL-2.0

package host

import (
	"bytes"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Adapter   = (*PlaneMesh)(nil)
	_ GridSizer = (*PlaneMesh)(nil)
)

func TestNewPlaneMesh_Layout(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(4, 2, 4, 2)
	verts, err := m.SelectedMeshVertices()
	require.NoError(t, err)
	require.Len(t, verts, 15)

	first, last := verts[0], verts[len(verts)-1]
	assert.Equal(t, Vec3{X: -2, Z: -1}, first.Position)
	assert.Equal(t, Vec2{U: 0, V: 0}, first.UV)
	assert.Equal(t, Vec3{X: 2, Z: 1}, last.Position)
	assert.Equal(t, Vec2{U: 1, V: 1}, last.UV)

	for i, v := range verts {
		assert.Equal(t, i, v.Index)
		assert.Equal(t, Vec3{Y: 1}, v.Normal)
	}
}

func TestNewPlaneMesh_MinimumDivisions(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(1, 1, 0, -3)
	assert.Equal(t, 4, m.Len())
}

func TestPlaneMesh_Selection(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(1, 1, 2, 2)
	m.Deselect()

	_, err := m.SelectedMeshVertices()
	assert.ErrorIs(t, err, ErrNoSelection)

	m.Select()
	_, err = m.SelectedMeshVertices()
	assert.NoError(t, err)
}

func TestPlaneMesh_GridSize(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(1, 2, 1, 2)
	cols, rows := m.GridSize()
	assert.Equal(t, 2, cols)
	assert.Equal(t, 3, rows)
	assert.Equal(t, m.Len(), cols*rows)
}

func TestUVGridSize(t *testing.T) {
	t.Parallel()

	verts := NewPlaneMesh(1, 2, 1, 2).Vertices()

	cols, rows, ok := UVGridSize(verts)
	require.True(t, ok)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 3, rows)

	_, _, ok = UVGridSize(verts[:5])
	assert.False(t, ok, "missing vertex is not a lattice")

	_, _, ok = UVGridSize(nil)
	assert.False(t, ok)
}

func TestPlaneMesh_SelectionIsASnapshot(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(1, 1, 1, 1)
	verts, err := m.SelectedMeshVertices()
	require.NoError(t, err)

	verts[0].Position.Y = 99
	assert.Zero(t, m.Vertices()[0].Position.Y)
}

func TestPlaneMesh_SetVertexPosition(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(1, 1, 1, 1)

	require.NoError(t, m.SetVertexPosition(2, Vec3{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, m.Vertices()[2].Position)

	assert.ErrorIs(t, m.SetVertexPosition(4, Vec3{}), ErrVertexOutOfRange)
	assert.ErrorIs(t, m.SetVertexPosition(-1, Vec3{}), ErrVertexOutOfRange)
	assert.ErrorIs(t, m.SetVertexPosition(0, Vec3{Y: math.NaN()}), ErrInvalidPosition)
}

func TestPlaneMesh_AssignTexture(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(1, 1, 1, 1)
	assert.Nil(t, m.Texture())
	assert.ErrorIs(t, m.AssignTexture(nil), ErrNilTexture)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, m.AssignTexture(img))
	assert.Same(t, img, m.Texture())
}

func TestPlaneMesh_WriteOBJ(t *testing.T) {
	t.Parallel()

	m := NewPlaneMesh(2, 2, 2, 1)
	require.NoError(t, m.SetVertexPosition(1, Vec3{X: 0, Y: 0.5, Z: -1}))

	var buf bytes.Buffer
	require.NoError(t, m.WriteOBJ(&buf))

	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		counts[strings.Fields(line)[0]]++
	}

	assert.Equal(t, 6, counts["v"])
	assert.Equal(t, 6, counts["vt"])
	assert.Equal(t, 6, counts["vn"])
	assert.Equal(t, 2, counts["f"])
	assert.Contains(t, buf.String(), "v 0 0.5 -1\n")
	assert.Contains(t, buf.String(), "f 1/1/1 4/4/4 5/5/5 2/2/2\n")
}

func TestVec3(t *testing.T) {
	t.Parallel()

	v := Vec3{X: 3, Y: 4}
	assert.Equal(t, 5.0, v.Length())
	assert.True(t, v.Normalize().ApproxEqual(Vec3{X: 0.6, Y: 0.8}))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, Vec3{X: 4, Y: 4, Z: 1}, v.Add(Vec3{X: 1, Z: 1}))
	assert.Equal(t, 3.0, v.Dot(Vec3{X: 1}))
	assert.False(t, Vec3{Z: math.Inf(1)}.IsFinite())
}
