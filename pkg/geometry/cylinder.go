package geometry

import (
	"math"
	"sort"
)

// Cylinder is an infinite circular cylinder around an axis through Origin
type Cylinder struct {
	Origin Point3
	Axis   Vector3 // unit length
	Radius float64
}

// NewCylinder creates a cylinder; the axis is normalized
func NewCylinder(origin Point3, axis Vector3, radius float64) Cylinder {
	return Cylinder{Origin: origin, Axis: axis.Normalize(Eps), Radius: radius}
}

// IsDegenerate reports whether the radius or the axis vanish
func (c Cylinder) IsDegenerate(eps float64) bool {
	return c.Radius <= eps || c.Axis.IsZero(eps)
}

// ClosestAxisPoint returns the point of the axis closest to p
func (c Cylinder) ClosestAxisPoint(p Point3) Point3 {
	return NewLine(c.Origin, c.Axis).ClosestPoint(p)
}

// ContainsPoint reports whether p lies on the cylinder surface
func (c Cylinder) ContainsPoint(p Point3, eps float64) bool {
	if c.IsDegenerate(eps) {
		return false
	}
	return IsZero(p.Distance(c.ClosestAxisPoint(p))-c.Radius, eps)
}

// NormalAt returns the outward unit normal at a surface point
func (c Cylinder) NormalAt(p Point3, eps float64) (Vector3, bool) {
	if !c.ContainsPoint(p, eps) {
		return Vector3{}, false
	}
	return p.Sub(c.ClosestAxisPoint(p)).Normalize(eps), true
}

// Project returns the point of the surface closest to p. Points on the axis
// have no unique projection.
func (c Cylinder) Project(p Point3, eps float64) (Point3, bool) {
	if c.IsDegenerate(eps) {
		return Point3{}, false
	}
	axisPoint := c.ClosestAxisPoint(p)
	radial := p.Sub(axisPoint)
	if radial.IsZero(eps) {
		return Point3{}, false
	}
	return axisPoint.Add(radial.Normalize(eps).Mul(c.Radius)), true
}

// IntersectLine returns the points where l crosses the surface, restricted
// to the line's domain and ordered by descending line parameter. A tangent
// line yields one point; a line parallel to the axis yields none.
func (c Cylinder) IntersectLine(l Line, eps float64) []Point3 {
	if c.IsDegenerate(eps) || l.IsDegenerate(eps) {
		return nil
	}
	w := l.Origin.Sub(c.Origin)
	d := l.Direction.Sub(l.Direction.ProjectOnto(c.Axis))
	wp := w.Sub(w.ProjectOnto(c.Axis))

	a := d.LengthSquared()
	if IsZero(a, eps) {
		return nil
	}
	b := 2 * d.Dot(wp)
	cc := wp.LengthSquared() - c.Radius*c.Radius
	disc := b*b - 4*a*cc

	var params []float64
	switch {
	case disc < -eps:
		return nil
	case disc <= eps:
		params = []float64{-b / (2 * a)}
	default:
		sq := math.Sqrt(disc)
		params = []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(params)))

	points := make([]Point3, 0, len(params))
	for _, t := range params {
		if l.Domain.Contains(t, eps) {
			points = append(points, l.PointAt(t))
		}
	}
	return points
}
