// Package raycast finds the nearest intersection of a ray with a mesh.
//
// Every triangle is tested (there is no acceleration structure). The scan
// can run serially, split into one goroutine per contiguous chunk, or as
// small tasks on a long-lived pool. All strategies return the same hit:
// the smallest distance from the ray origin wins and equal distances go to
// the lower triangle index.
package raycast

import (
	"math"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
)

// Hit describes the nearest intersection of a ray with a mesh
type Hit struct {
	Point     geometry.Point3
	Triangle  int          // triangle index
	SurfaceID int          // index into Mesh.Surfaces
	Surface   mesh.Surface // the surface containing Triangle
	Distance  float64      // distance from the ray origin
}

// candidate is the best intersection found within one range of triangles
type candidate struct {
	triangle int
	point    geometry.Point3
	dist2    float64
	found    bool
}

// beats reports whether c is preferred over other
func (c candidate) beats(other candidate) bool {
	if !c.found {
		return false
	}
	if !other.found || c.dist2 < other.dist2 {
		return true
	}
	return c.dist2 == other.dist2 && c.triangle < other.triangle
}

// scanRange tests triangles [begin, end) in ascending order
func scanRange(m *mesh.Mesh, ray geometry.Line, eps float64, begin, end int) candidate {
	best := candidate{dist2: math.Inf(1)}
	for i := begin; i < end; i++ {
		p, t, ok := m.Triangle(i).IntersectLine(ray, eps)
		if !ok || !ray.Domain.Contains(t, eps) {
			continue
		}
		d2 := p.SquaredDistance(ray.Origin)
		if !best.found || d2 < best.dist2 {
			best = candidate{triangle: i, point: p, dist2: d2, found: true}
		}
	}
	return best
}

// reduce picks the winner among per-range candidates
func reduce(partials []candidate) candidate {
	var best candidate
	for _, c := range partials {
		if c.beats(best) {
			best = c
		}
	}
	return best
}

// toHit maps the winning triangle to its surface
func toHit(m *mesh.Mesh, c candidate) (Hit, bool) {
	if !c.found {
		return Hit{}, false
	}
	id := m.SurfaceIndex(c.triangle)
	return Hit{
		Point:     c.point,
		Triangle:  c.triangle,
		SurfaceID: id,
		Surface:   m.Surfaces[id],
		Distance:  math.Sqrt(c.dist2),
	}, true
}

// castable reports whether a query can produce a hit at all
func castable(m *mesh.Mesh, ray geometry.Line, eps float64) bool {
	return m != nil && m.TriangleCount() > 0 && !ray.IsDegenerate(eps)
}

// CastRay returns the nearest hit scanning all triangles on the calling
// goroutine. Only intersections inside the ray's own domain count, so the
// same call serves lines, rays and segments.
func CastRay(m *mesh.Mesh, ray geometry.Line, eps float64) (Hit, bool) {
	if !castable(m, ray, eps) {
		return Hit{}, false
	}
	return toHit(m, scanRange(m, ray, eps, 0, m.TriangleCount()))
}
