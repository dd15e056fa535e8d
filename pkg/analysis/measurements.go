// Package analysis computes descriptive statistics for meshes.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
)

// EdgeInfo contains information about an edge in the mesh
type EdgeInfo struct {
	Start      geometry.Point3
	End        geometry.Point3
	Length     float64
	TriangleID int
}

// SurfaceInfo summarizes one surface
type SurfaceInfo struct {
	ID        int
	Surface   mesh.Surface
	Triangles int
	Area      float64
	Normal    geometry.Vector3 // area-weighted average, unit length
	Planar    bool             // all triangles share the average normal

	// Cylinder is set for non-planar surfaces whose vertices all lie on one
	// circular cylinder
	Cylindrical bool
	Cylinder    geometry.Cylinder
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox     geometry.BoundingBox
	Dimensions      geometry.Vector3
	Volume          float64 // bounding box volume
	SurfaceArea     float64
	PointCount      int
	TriangleCount   int
	DegenerateCount int
	EdgeCount       int
	UniqueEdgeCount int
	MinEdgeLength   float64
	MaxEdgeLength   float64
	AvgEdgeLength   float64
	AllEdges        []EdgeInfo
	Surfaces        []SurfaceInfo
}

// AnalyzeMesh performs comprehensive analysis on a mesh.
// eps decides degeneracy and planarity.
func AnalyzeMesh(m *mesh.Mesh, eps float64) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   m.BoundingBox(),
		SurfaceArea:   m.SurfaceArea(),
		PointCount:    len(m.Points),
		TriangleCount: m.TriangleCount(),
		AllEdges:      make([]EdgeInfo, 0, 3*m.TriangleCount()),
	}

	result.Dimensions = result.BoundingBox.Size()
	result.Volume = result.BoundingBox.Volume()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	unique := make(map[[2]geometry.Point3]struct{})

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		if tri.IsDegenerate(eps) {
			result.DegenerateCount++
		}

		for _, edge := range [][2]geometry.Point3{{tri.A, tri.B}, {tri.B, tri.C}, {tri.C, tri.A}} {
			length := edge[0].Distance(edge[1])
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:      edge[0],
				End:        edge[1],
				Length:     length,
				TriangleID: i,
			})
			unique[edgeKey(edge[0], edge[1])] = struct{}{}

			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	result.EdgeCount = len(result.AllEdges)
	result.UniqueEdgeCount = len(unique)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	for id, s := range m.Surfaces {
		result.Surfaces = append(result.Surfaces, analyzeSurface(m, id, s, eps))
	}

	return result
}

// edgeKey orders the end points so both directions map to the same key
func edgeKey(a, b geometry.Point3) [2]geometry.Point3 {
	if a.X > b.X || (a.X == b.X && (a.Y > b.Y || (a.Y == b.Y && a.Z > b.Z))) {
		a, b = b, a
	}
	return [2]geometry.Point3{a, b}
}

func analyzeSurface(m *mesh.Mesh, id int, s mesh.Surface, eps float64) SurfaceInfo {
	info := SurfaceInfo{ID: id, Surface: s, Triangles: s.Len()}

	var weighted geometry.Vector3
	for i := s.Begin; i < s.End; i++ {
		tri := m.Triangle(i)
		area := tri.Area()
		info.Area += area
		weighted = weighted.Add(tri.Normal().Mul(area))
	}
	info.Normal = weighted.Normalize(eps)

	info.Planar = !info.Normal.IsZero(eps)
	for i := s.Begin; i < s.End && info.Planar; i++ {
		tri := m.Triangle(i)
		if tri.IsDegenerate(eps) {
			continue
		}
		if !tri.Normal().Equal(info.Normal, math.Sqrt(eps)) ||
			!tri.Plane().ContainsPoint(m.Triangle(s.Begin).A, math.Sqrt(eps)) {
			info.Planar = false
		}
	}
	if !info.Planar {
		info.Cylinder, info.Cylindrical = fitCylinder(m, s, math.Sqrt(eps))
	}
	return info
}

// fitCylinder takes the axis direction from the two facets whose normals
// differ most, then fits a circle through their vertices in a cross
// section. The radius is the mean vertex distance from that axis.
func fitCylinder(m *mesh.Mesh, s mesh.Surface, tol float64) (geometry.Cylinder, bool) {
	first := -1
	for i := s.Begin; i < s.End; i++ {
		if !m.Triangle(i).IsDegenerate(tol * tol) {
			first = i
			break
		}
	}
	if first < 0 {
		return geometry.Cylinder{}, false
	}
	t1 := m.Triangle(first)
	n1 := t1.Normal()

	second, axis := -1, geometry.Vector3{}
	for i := first + 1; i < s.End; i++ {
		tri := m.Triangle(i)
		if tri.IsDegenerate(tol * tol) {
			continue
		}
		if c := n1.Cross(tri.Normal()); c.LengthSquared() > axis.LengthSquared() {
			second, axis = i, c
		}
	}
	if second < 0 || axis.IsZero(tol) {
		return geometry.Cylinder{}, false
	}
	t2 := m.Triangle(second)

	section := geometry.NewPlane(t1.A, axis)
	var points []geometry.Point3
	for _, p := range []geometry.Point3{t1.A, t1.B, t1.C, t2.A, t2.B, t2.C} {
		points = append(points, section.Project(p))
	}
	center, ok := widestCircumcenter(points, tol)
	if !ok {
		return geometry.Cylinder{}, false
	}
	cyl := geometry.NewCylinder(center, axis, 0)

	sum, count := 0.0, 0
	for i := s.Begin; i < s.End; i++ {
		for _, idx := range m.Triangles[3*i : 3*i+3] {
			p := m.Points[idx]
			sum += p.Distance(cyl.ClosestAxisPoint(p))
			count++
		}
	}
	cyl.Radius = sum / float64(count)

	for i := s.Begin; i < s.End; i++ {
		for _, idx := range m.Triangles[3*i : 3*i+3] {
			if !cyl.ContainsPoint(m.Points[idx], tol*max(1, cyl.Radius)) {
				return geometry.Cylinder{}, false
			}
		}
	}
	return cyl, true
}

// widestCircumcenter returns the center of the circle through the three
// points spanning the largest triangle
func widestCircumcenter(points []geometry.Point3, tol float64) (geometry.Point3, bool) {
	var best geometry.Triangle
	bestArea := 0.0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			for k := j + 1; k < len(points); k++ {
				tri := geometry.NewTriangle(points[i], points[j], points[k])
				if area := tri.Area(); area > bestArea {
					best, bestArea = tri, area
				}
			}
		}
	}
	if bestArea <= tol*tol {
		return geometry.Point3{}, false
	}

	a := best.A.Sub(best.C)
	b := best.B.Sub(best.C)
	axb := a.Cross(b)
	offset := b.Mul(a.LengthSquared()).Sub(a.Mul(b.LengthSquared())).Cross(axb).Div(2 * axb.LengthSquared())
	return best.C.Add(offset), true
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FindNearestVertex finds the mesh point nearest to a given point
func FindNearestVertex(m *mesh.Mesh, point geometry.Point3) (geometry.Point3, float64, bool) {
	if len(m.Points) == 0 {
		return geometry.Point3{}, 0, false
	}

	nearest := m.Points[0]
	minDistance := point.SquaredDistance(nearest)
	for _, p := range m.Points[1:] {
		if d := point.SquaredDistance(p); d < minDistance {
			minDistance = d
			nearest = p
		}
	}

	return nearest, math.Sqrt(minDistance), true
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FormatPoint formats a 3D point
func FormatPoint(p geometry.Point3) string {
	return FormatVector(p.Vector())
}
