// Package mesh holds the triangulated mesh data model shared by the
// factories, the binary codec and the ray caster.
package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/philipparndt/meshray/pkg/geometry"
)

var (
	// ErrNormalCount is returned when Normals is not parallel to Points
	ErrNormalCount = errors.New("normal count does not match point count")
	// ErrIndexCount is returned when the index count is not a multiple of 3
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	// ErrIndexRange is returned for an index outside the point array
	ErrIndexRange = errors.New("index out of range")
	// ErrSurfaces is returned when surfaces do not partition the triangles
	ErrSurfaces = errors.New("surfaces do not partition the triangles")
)

// Surface is a half-open range [Begin, End) of triangle indices
type Surface struct {
	Begin int
	End   int
}

// Len returns the number of triangles in the surface
func (s Surface) Len() int {
	return s.End - s.Begin
}

// Contains reports whether triangle index i belongs to the surface
func (s Surface) Contains(i int) bool {
	return i >= s.Begin && i < s.End
}

func (s Surface) String() string {
	return fmt.Sprintf("[%d,%d)", s.Begin, s.End)
}

// Mesh is an indexed triangle mesh. Every three consecutive entries of
// Triangles form one triangle; Normals[i] belongs to Points[i].
type Mesh struct {
	Points    []geometry.Point3
	Normals   []geometry.Vector3
	Triangles []int
	Surfaces  []Surface
}

// New creates a mesh from its arrays and validates it
func New(points []geometry.Point3, normals []geometry.Vector3, triangles []int, surfaces []Surface) (*Mesh, error) {
	m := &Mesh{
		Points:    points,
		Normals:   normals,
		Triangles: triangles,
		Surfaces:  surfaces,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the structural invariants of the mesh
func (m *Mesh) Validate() error {
	if len(m.Normals) != len(m.Points) {
		return fmt.Errorf("%w: %d normals, %d points", ErrNormalCount, len(m.Normals), len(m.Points))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexCount, len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Points) {
			return fmt.Errorf("%w: index %d at position %d, %d points", ErrIndexRange, idx, i, len(m.Points))
		}
	}

	next := 0
	for i, s := range m.Surfaces {
		if s.Begin != next || s.End <= s.Begin {
			return fmt.Errorf("%w: surface %d is %v, expected to start at %d", ErrSurfaces, i, s, next)
		}
		next = s.End
	}
	if next != m.TriangleCount() {
		return fmt.Errorf("%w: surfaces cover %d of %d triangles", ErrSurfaces, next, m.TriangleCount())
	}
	return nil
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Triangle returns triangle i as geometry
func (m *Mesh) Triangle(i int) geometry.Triangle {
	base := 3 * i
	return geometry.NewTriangle(
		m.Points[m.Triangles[base]],
		m.Points[m.Triangles[base+1]],
		m.Points[m.Triangles[base+2]],
	)
}

// SurfaceIndex returns the index of the surface containing triangle i.
// It panics when no surface contains i, which Validate rules out.
func (m *Mesh) SurfaceIndex(i int) int {
	k := sort.Search(len(m.Surfaces), func(k int) bool {
		return m.Surfaces[k].End > i
	})
	if k == len(m.Surfaces) || !m.Surfaces[k].Contains(i) {
		panic(fmt.Sprintf("mesh: triangle %d is not part of any surface", i))
	}
	return k
}

// SurfaceOf returns the surface containing triangle i
func (m *Mesh) SurfaceOf(i int) Surface {
	return m.Surfaces[m.SurfaceIndex(i)]
}

// BoundingBox calculates the bounding box of all points
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range m.Points {
		bbox.Extend(p)
	}
	return bbox
}

// SurfaceArea calculates the total area of all triangles
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := 0; i < m.TriangleCount(); i++ {
		total += m.Triangle(i).Area()
	}
	return total
}

// Area calculates the area of one surface
func (m *Mesh) Area(s Surface) float64 {
	total := 0.0
	for i := s.Begin; i < s.End; i++ {
		total += m.Triangle(i).Area()
	}
	return total
}

// Transform applies an affine transform in place. Normals use the inverse
// transpose so they stay perpendicular under non-uniform scaling.
func (m *Mesh) Transform(t geometry.Matrix4) {
	nm := t.NormalMatrix()
	for i, p := range m.Points {
		m.Points[i] = t.TransformPoint(p)
	}
	for i, n := range m.Normals {
		m.Normals[i] = nm.TransformVector(n).Normalize(geometry.Eps)
	}
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Points:    append([]geometry.Point3(nil), m.Points...),
		Normals:   append([]geometry.Vector3(nil), m.Normals...),
		Triangles: append([]int(nil), m.Triangles...),
		Surfaces:  append([]Surface(nil), m.Surfaces...),
	}
}

// Equal reports whether both meshes hold identical arrays
func (m *Mesh) Equal(other *Mesh) bool {
	if len(m.Points) != len(other.Points) || len(m.Normals) != len(other.Normals) ||
		len(m.Triangles) != len(other.Triangles) || len(m.Surfaces) != len(other.Surfaces) {
		return false
	}
	for i := range m.Points {
		if m.Points[i] != other.Points[i] || m.Normals[i] != other.Normals[i] {
			return false
		}
	}
	for i := range m.Triangles {
		if m.Triangles[i] != other.Triangles[i] {
			return false
		}
	}
	for i := range m.Surfaces {
		if m.Surfaces[i] != other.Surfaces[i] {
			return false
		}
	}
	return true
}
