package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshray/pkg/geometry"
)

const squareASCII = `solid square
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0 0 0
    outer loop
      vertex 0 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 1 0 0
    outer loop
      vertex 1 0 0
      vertex 1 0 1
      vertex 1 1 0
    endloop
  endfacet
endsolid square
`

func TestParseASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(squareASCII))
	require.NoError(t, err)

	assert.Equal(t, "square", model.Name)
	require.Equal(t, 3, model.FacetCount())
	assert.Equal(t, geometry.NewVector3(0, 0, 1), model.Facets[0].Normal)
	assert.Equal(t, geometry.NewPoint3(0, 1, 0), model.Facets[1].Vertices[2])
}

func TestParseASCIIErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad number", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 a 0\n"},
		{"missing vertex", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\n"},
		{"malformed facet", "solid x\nfacet 0 0 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func writeBinary(t *testing.T, header string, facets []Facet) []byte {
	t.Helper()
	var buf bytes.Buffer
	h := make([]byte, binaryHeaderSize)
	copy(h, header)
	buf.Write(h)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(facets))))
	for _, f := range facets {
		values := []float32{float32(f.Normal.X), float32(f.Normal.Y), float32(f.Normal.Z)}
		for _, v := range f.Vertices {
			values = append(values, float32(v.X), float32(v.Y), float32(v.Z))
		}
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, values))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
	}
	return buf.Bytes()
}

func TestParseBinary(t *testing.T) {
	facets := []Facet{{
		Normal: geometry.NewVector3(0, 0, 1),
		Vertices: [3]geometry.Point3{
			geometry.NewPoint3(0, 0, 0),
			geometry.NewPoint3(2, 0, 0),
			geometry.NewPoint3(0, 2, 0),
		},
	}}

	// a header starting with "solid" must not fool the format detection
	data := writeBinary(t, "solid but binary", facets)
	model, err := ParseReader(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "solid but binary", model.Name)
	require.Equal(t, 1, model.FacetCount())
	assert.Equal(t, facets[0], model.Facets[0])

	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	fromFile, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, model, fromFile)
}

func TestParseBinaryTruncated(t *testing.T) {
	data := writeBinary(t, "x", []Facet{{}, {}})
	_, err := ParseReader(bytes.NewReader(data[:len(data)-10]))
	assert.Error(t, err)
}

func TestToMeshGroupsCoplanarFacets(t *testing.T) {
	model, err := ParseReader(strings.NewReader(squareASCII))
	require.NoError(t, err)

	m, skipped := model.ToMesh(1e-6)
	require.NoError(t, m.Validate())

	assert.Equal(t, 0, skipped)
	assert.Equal(t, 3, m.TriangleCount())
	assert.Len(t, m.Points, 9)
	require.Len(t, m.Surfaces, 2)
	assert.Equal(t, 2, m.Surfaces[0].Len())
	assert.Equal(t, 1, m.Surfaces[1].Len())

	// the zero normal of the second facet is recomputed from the winding
	assert.Equal(t, geometry.NewVector3(0, 0, 1), m.Normals[3])
	assert.Equal(t, geometry.NewVector3(1, 0, 0), m.Normals[6])
}

func TestToMeshSkipsDegenerateFacets(t *testing.T) {
	model := NewModel("degenerate")
	model.AddFacet(Facet{Vertices: [3]geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 1, 1),
		geometry.NewPoint3(2, 2, 2),
	}})

	m, skipped := model.ToMesh(1e-6)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 0, m.TriangleCount())
	assert.NoError(t, m.Validate())
}
