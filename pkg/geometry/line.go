package geometry

import "math"

// Domain restricts the parameter t of a Line.
type Domain int

const (
	// Unbounded accepts every t (an infinite line)
	Unbounded Domain = iota
	// HalfBounded accepts t >= 0 (a ray)
	HalfBounded
	// Bounded accepts t in [0, 1] (a segment from Origin to Origin+Direction)
	Bounded
)

// String returns the name of the domain
func (d Domain) String() string {
	switch d {
	case Unbounded:
		return "line"
	case HalfBounded:
		return "ray"
	case Bounded:
		return "segment"
	default:
		return "unknown"
	}
}

// Contains reports whether t lies inside the domain, allowing eps slack at the bounds
func (d Domain) Contains(t, eps float64) bool {
	switch d {
	case HalfBounded:
		return t >= -eps
	case Bounded:
		return t >= -eps && t <= 1+eps
	default:
		return !math.IsNaN(t)
	}
}

// Clamp moves t to the nearest value inside the domain
func (d Domain) Clamp(t float64) float64 {
	switch d {
	case HalfBounded:
		return math.Max(t, 0)
	case Bounded:
		return Clamp(t, 0, 1)
	default:
		return t
	}
}

// Line is a parametrized curve Origin + t*Direction.
// The direction does not need unit length; Domain decides which t are valid,
// so lines, rays and segments share all intersection math.
type Line struct {
	Origin    Point3
	Direction Vector3
	Domain    Domain
}

// NewLine creates an infinite line
func NewLine(origin Point3, direction Vector3) Line {
	return Line{Origin: origin, Direction: direction, Domain: Unbounded}
}

// NewRay creates a ray starting at origin
func NewRay(origin Point3, direction Vector3) Line {
	return Line{Origin: origin, Direction: direction, Domain: HalfBounded}
}

// NewSegment creates the segment between two points; start is t=0, end is t=1
func NewSegment(start, end Point3) Line {
	return Line{Origin: start, Direction: end.Sub(start), Domain: Bounded}
}

// PointAt returns Origin + t*Direction
func (l Line) PointAt(t float64) Point3 {
	return l.Origin.Add(l.Direction.Mul(t))
}

// End returns the point at t=1
func (l Line) End() Point3 {
	return l.PointAt(1)
}

// IsDegenerate reports whether the direction is within eps of zero
func (l Line) IsDegenerate(eps float64) bool {
	return l.Direction.IsZero(eps)
}

// AngleTo returns the angle between the directions of two lines
func (l Line) AngleTo(other Line) float64 {
	return l.Direction.AngleTo(other.Direction)
}

// IsParallel reports whether the directions are parallel
func (l Line) IsParallel(other Line, eps float64) bool {
	return l.Direction.IsParallel(other.Direction, eps)
}

// IsOpposite reports whether the directions are parallel and opposed
func (l Line) IsOpposite(other Line, eps float64) bool {
	return l.Direction.IsOpposite(other.Direction, eps)
}

// IsOrthogonal reports whether the directions are orthogonal
func (l Line) IsOrthogonal(other Line, eps float64) bool {
	return l.Direction.IsOrthogonal(other.Direction, eps)
}

// IntersectParams solves l.PointAt(t1) == other.PointAt(t2) for the
// carrier lines, ignoring both domains. It fails for parallel lines. For skew
// lines the parameters of the closest points are returned, so callers must
// check that the points coincide.
func (l Line) IntersectParams(other Line, eps float64) (t1, t2 float64, ok bool) {
	n := l.Direction.Cross(other.Direction)
	if n.IsZero(eps) {
		return 0, 0, false
	}
	n2 := n.LengthSquared()
	w := other.Origin.Sub(l.Origin)
	t1 = w.Cross(other.Direction).Dot(n) / n2
	t2 = w.Cross(l.Direction).Dot(n) / n2
	return t1, t2, true
}

// Intersect returns the single point shared by both lines inside both domains
func (l Line) Intersect(other Line, eps float64) (Point3, bool) {
	t1, t2, ok := l.IntersectParams(other, eps)
	if !ok {
		return Point3{}, false
	}
	if !l.Domain.Contains(t1, eps) || !other.Domain.Contains(t2, eps) {
		return Point3{}, false
	}
	p1 := l.PointAt(t1)
	p2 := other.PointAt(t2)
	if !p1.Equal(p2, eps) {
		return Point3{}, false
	}
	return p1, true
}

// IsSkew reports whether the carrier lines neither intersect nor run parallel
func (l Line) IsSkew(other Line, eps float64) bool {
	if l.IsParallel(other, eps) {
		return false
	}
	carrier := Line{Origin: l.Origin, Direction: l.Direction}
	_, ok := carrier.Intersect(Line{Origin: other.Origin, Direction: other.Direction}, eps)
	return !ok
}

// ClosestParam returns the domain-clamped parameter of the point closest to p
func (l Line) ClosestParam(p Point3) float64 {
	d2 := l.Direction.LengthSquared()
	if d2 == 0 {
		return 0
	}
	return l.Domain.Clamp(p.Sub(l.Origin).Dot(l.Direction) / d2)
}

// ClosestPoint returns the point of the line (within its domain) closest to p.
// A ray clamps to its origin, a segment to its end points.
func (l Line) ClosestPoint(p Point3) Point3 {
	return l.PointAt(l.ClosestParam(p))
}

// DistanceToPoint returns the distance from p to the closest point of the line
func (l Line) DistanceToPoint(p Point3) float64 {
	return p.Distance(l.ClosestPoint(p))
}

// ContainsPoint reports whether p lies on the line within its domain
func (l Line) ContainsPoint(p Point3, eps float64) bool {
	if l.IsDegenerate(eps) {
		return false
	}
	return l.ClosestPoint(p).Equal(p, eps)
}
