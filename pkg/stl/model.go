package stl

import (
	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
)

// Facet is one STL triangle with its stored normal
type Facet struct {
	Normal   geometry.Vector3
	Vertices [3]geometry.Point3
}

// Triangle returns the facet geometry
func (f Facet) Triangle() geometry.Triangle {
	return geometry.NewTriangle(f.Vertices[0], f.Vertices[1], f.Vertices[2])
}

// Model represents a complete STL model
type Model struct {
	Name   string
	Facets []Facet
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:   name,
		Facets: make([]Facet, 0),
	}
}

// AddFacet adds a facet to the model
func (m *Model) AddFacet(facet Facet) {
	m.Facets = append(m.Facets, facet)
}

// FacetCount returns the number of facets in the model
func (m *Model) FacetCount() int {
	return len(m.Facets)
}

// ToMesh converts the facets into a mesh. Every facet gets its own three
// points carrying the facet normal (recomputed from the winding when the
// stored one is zero). Consecutive facets sharing a plane with the same
// orientation are grouped into one surface. Degenerate facets are dropped
// and counted in skipped.
func (m *Model) ToMesh(eps float64) (result *mesh.Mesh, skipped int) {
	result = &mesh.Mesh{
		Points:    make([]geometry.Point3, 0, 3*len(m.Facets)),
		Normals:   make([]geometry.Vector3, 0, 3*len(m.Facets)),
		Triangles: make([]int, 0, 3*len(m.Facets)),
	}

	var current geometry.Plane
	for _, facet := range m.Facets {
		tri := facet.Triangle()
		if tri.IsDegenerate(eps) {
			skipped++
			continue
		}

		normal := facet.Normal.Normalize(eps)
		if normal.IsZero(eps) {
			normal = tri.Normal()
		}

		index := result.TriangleCount()
		last := len(result.Surfaces) - 1
		if last >= 0 && sameSurface(current, normal, tri, eps) {
			result.Surfaces[last].End = index + 1
		} else {
			result.Surfaces = append(result.Surfaces, mesh.Surface{Begin: index, End: index + 1})
			current = geometry.Plane{Point: tri.A, Normal: normal}
		}

		for _, v := range facet.Vertices {
			result.Triangles = append(result.Triangles, len(result.Points))
			result.Points = append(result.Points, v)
			result.Normals = append(result.Normals, normal)
		}
	}
	return result, skipped
}

func sameSurface(plane geometry.Plane, normal geometry.Vector3, tri geometry.Triangle, eps float64) bool {
	if !plane.Normal.Equal(normal, eps) {
		return false
	}
	return plane.ContainsPoint(tri.A, eps) && plane.ContainsPoint(tri.B, eps) && plane.ContainsPoint(tri.C, eps)
}
