package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	A, B, C Point3
}

// NewTriangle creates a new triangle
func NewTriangle(a, b, c Point3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Normal computes the unit normal normalize((B-A) x (C-A)).
// A degenerate triangle yields its (near) zero cross product.
func (t Triangle) Normal() Vector3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize(Eps)
}

// IsDegenerate reports whether the triangle has (near) zero area
func (t Triangle) IsDegenerate(eps float64) bool {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).IsZero(eps)
}

// Plane returns the supporting plane of the triangle
func (t Triangle) Plane() Plane {
	return Plane{Point: t.A, Normal: t.Normal()}
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Length() / 2.0
}

// EdgeLengths returns the lengths of AB, BC and CA
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.A.Distance(t.B),
		t.B.Distance(t.C),
		t.C.Distance(t.A),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Point3 {
	return Point3{
		X: (t.A.X + t.B.X + t.C.X) / 3.0,
		Y: (t.A.Y + t.B.Y + t.C.Y) / 3.0,
		Z: (t.A.Z + t.B.Z + t.C.Z) / 3.0,
	}
}

// PointAt returns (1-u-v)*A + u*B + v*C
func (t Triangle) PointAt(u, v float64) Point3 {
	return t.A.Add(t.B.Sub(t.A).Mul(u)).Add(t.C.Sub(t.A).Mul(v))
}

// Barycentric returns (u, v) with p = (1-u-v)*A + u*B + v*C for the projection
// of p onto the supporting plane. It fails for degenerate triangles.
func (t Triangle) Barycentric(p Point3, eps float64) (u, v float64, ok bool) {
	e0 := t.B.Sub(t.A)
	e1 := t.C.Sub(t.A)
	w := p.Sub(t.A)

	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	d20 := w.Dot(e0)
	d21 := w.Dot(e1)

	denom := d00*d11 - d01*d01
	if IsZero(denom, eps*eps) {
		return 0, 0, false
	}
	u = (d11*d20 - d01*d21) / denom
	v = (d00*d21 - d01*d20) / denom
	return u, v, true
}

// ContainsPoint reports whether p lies on the supporting plane and inside
// (or on the border of) the triangle
func (t Triangle) ContainsPoint(p Point3, eps float64) bool {
	if t.IsDegenerate(eps) || !t.Plane().ContainsPoint(p, eps) {
		return false
	}
	u, v, ok := t.Barycentric(p, eps)
	if !ok {
		return false
	}
	return u >= -eps && v >= -eps && u+v <= 1+eps
}

// IntersectLine intersects the carrier of l with the triangle and returns the
// point with its line parameter. Domain filtering (t >= 0 for rays) is left
// to the caller.
func (t Triangle) IntersectLine(l Line, eps float64) (Point3, float64, bool) {
	if t.IsDegenerate(eps) {
		return Point3{}, 0, false
	}
	p, param, ok := t.Plane().IntersectLine(l, eps)
	if !ok {
		return Point3{}, 0, false
	}
	u, v, ok := t.Barycentric(p, eps)
	if !ok || u < -eps || v < -eps || u+v > 1+eps {
		return Point3{}, 0, false
	}
	return p, param, true
}
