package geometry

// Plane is defined by a point on it and its normal
type Plane struct {
	Point  Point3
	Normal Vector3
}

// NewPlane creates a plane; the normal is normalized
func NewPlane(point Point3, normal Vector3) Plane {
	return Plane{Point: point, Normal: normal.Normalize(Eps)}
}

// SignedDistance returns the distance of p along the normal
func (pl Plane) SignedDistance(p Point3) float64 {
	return p.Sub(pl.Point).Dot(pl.Normal)
}

// ContainsPoint reports whether p lies on the plane within eps
func (pl Plane) ContainsPoint(p Point3, eps float64) bool {
	return p.Sub(pl.Point).IsOrthogonal(pl.Normal, eps)
}

// IntersectLine intersects the carrier of l with the plane and returns the
// point and its line parameter. The line's domain is not applied here.
// Lines lying in or parallel to the plane have no unique intersection.
func (pl Plane) IntersectLine(l Line, eps float64) (Point3, float64, bool) {
	denom := pl.Normal.Dot(l.Direction)
	if IsZero(denom, eps) {
		return Point3{}, 0, false
	}
	t := pl.Normal.Dot(pl.Point.Sub(l.Origin)) / denom
	return l.PointAt(t), t, true
}

// Project returns the orthogonal projection of p onto the plane
func (pl Plane) Project(p Point3) Point3 {
	offset := p.Sub(pl.Point).ProjectOnto(pl.Normal)
	return p.Add(offset.Neg())
}

// ProjectVector removes the normal component of v
func (pl Plane) ProjectVector(v Vector3) Vector3 {
	return v.Sub(v.ProjectOnto(pl.Normal))
}
