package geometry

import "math"

// Point3 represents a position in 3D space
type Point3 struct {
	X, Y, Z float64
}

// NewPoint3 creates a new 3D point
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add moves the point by a vector
func (p Point3) Add(v Vector3) Point3 {
	return Point3{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Sub returns the vector from other to p
func (p Point3) Sub(other Point3) Vector3 {
	return Vector3{X: p.X - other.X, Y: p.Y - other.Y, Z: p.Z - other.Z}
}

// Vector returns the position vector of the point
func (p Point3) Vector() Vector3 {
	return Vector3(p)
}

// SquaredDistance returns the squared distance between two points
func (p Point3) SquaredDistance(other Point3) float64 {
	return p.Sub(other).LengthSquared()
}

// Distance returns the distance between two points
func (p Point3) Distance(other Point3) float64 {
	return math.Sqrt(p.SquaredDistance(other))
}

// Equal reports whether the points are within eps of each other
func (p Point3) Equal(other Point3, eps float64) bool {
	return p.SquaredDistance(other) <= eps*eps
}

// Lerp returns the point at fraction t on the way from p to other
func (p Point3) Lerp(other Point3, t float64) Point3 {
	return p.Add(other.Sub(p).Mul(t))
}
